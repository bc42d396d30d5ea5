package model

import (
	"classhub/internal/entity"
	"context"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户目录
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	GetUserByLogin(ctx context.Context, login string) (*entity.DbUser, error)
	ExistsUserByNameOrEmail(ctx context.Context, name, email string) (bool, error)
	CountUsersByName(ctx context.Context, name string, excludeID uint) (int64, error)
	CountUsersByEmail(ctx context.Context, email string, excludeID uint) (int64, error)
	SearchUsers(ctx context.Context, terms []string, params *entity.BaseParams) ([]entity.DbUser, *entity.Meta, error)
	ListUsersByIDs(ctx context.Context, ids []uint) ([]entity.DbUser, error)
	CountUsers(ctx context.Context) (int64, error)

	// 关注关系：一批行在同一事务内更新
	ApplyRelationUpdates(ctx context.Context, updates []entity.UserRelationUpdate) error

	// 用户详情
	CreateUserDetail(ctx context.Context, detail *entity.DbUserDetail) error
	GetUserDetailByID(ctx context.Context, id uint) (*entity.DbUserDetail, error)

	// 学籍记录
	CreateStudent(ctx context.Context, student *entity.DbStudent) error
	GetStudentByID(ctx context.Context, id uint) (*entity.DbStudent, error)
	ListStudents(ctx context.Context, params *entity.BaseParams) ([]entity.DbStudent, *entity.Meta, error)
	UpdateStudent(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteStudent(ctx context.Context, id uint) error

	CreateSubject(ctx context.Context, subject *entity.DbSubject) error
	ListSubjects(ctx context.Context) ([]entity.DbSubject, error)

	CreateLesson(ctx context.Context, lesson *entity.DbLesson) error
	ListLessons(ctx context.Context) ([]entity.DbLesson, error)

	CreateGrade(ctx context.Context, grade *entity.DbGrade) error
	ListGrades(ctx context.Context) ([]entity.DbGrade, error)

	CreateResource(ctx context.Context, resource *entity.DbResource) error
	GetResourceByID(ctx context.Context, id uint) (*entity.DbResource, error)
	ListResources(ctx context.Context) ([]entity.DbResource, error)
}
