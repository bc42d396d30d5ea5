package sql

import (
	"classhub/internal/entity"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// 学籍记录只有增删改查，没有业务规则。

// CreateStudent persists a new student record.
func (r *GormRepository) CreateStudent(ctx context.Context, student *entity.DbStudent) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if student == nil {
		return fmt.Errorf("student is nil")
	}
	return r.db.WithContext(ctx).Create(student).Error
}

// GetStudentByID loads a student by ID.
func (r *GormRepository) GetStudentByID(ctx context.Context, id uint) (*entity.DbStudent, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var student entity.DbStudent
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// ListStudents returns paginated students.
func (r *GormRepository) ListStudents(ctx context.Context, params *entity.BaseParams) ([]entity.DbStudent, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbStudent{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page := 1
	pageSize := 20
	if params != nil {
		if params.Page > 0 {
			page = int(params.Page)
		}
		if params.PageSize > 0 {
			pageSize = int(params.PageSize)
		}
	}

	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}

	var students []entity.DbStudent
	if err := query.Order("id ASC").Offset(offset).Limit(pageSize).Find(&students).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return students, meta, nil
}

// UpdateStudent updates an existing student entry.
func (r *GormRepository) UpdateStudent(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid student id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbStudent{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteStudent removes a student by ID.
func (r *GormRepository) DeleteStudent(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid student id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbStudent{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateSubject persists a new subject.
func (r *GormRepository) CreateSubject(ctx context.Context, subject *entity.DbSubject) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if subject == nil {
		return fmt.Errorf("subject is nil")
	}
	return r.db.WithContext(ctx).Create(subject).Error
}

// ListSubjects returns all subjects.
func (r *GormRepository) ListSubjects(ctx context.Context) ([]entity.DbSubject, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var subjects []entity.DbSubject
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

// CreateLesson persists a new lesson.
func (r *GormRepository) CreateLesson(ctx context.Context, lesson *entity.DbLesson) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if lesson == nil {
		return fmt.Errorf("lesson is nil")
	}
	return r.db.WithContext(ctx).Create(lesson).Error
}

// ListLessons returns all lessons.
func (r *GormRepository) ListLessons(ctx context.Context) ([]entity.DbLesson, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var lessons []entity.DbLesson
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

// CreateGrade persists a new grade row.
func (r *GormRepository) CreateGrade(ctx context.Context, grade *entity.DbGrade) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if grade == nil {
		return fmt.Errorf("grade is nil")
	}
	return r.db.WithContext(ctx).Create(grade).Error
}

// ListGrades returns all grade rows.
func (r *GormRepository) ListGrades(ctx context.Context) ([]entity.DbGrade, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var grades []entity.DbGrade
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

// CreateResource persists a new resource with its binary content.
func (r *GormRepository) CreateResource(ctx context.Context, resource *entity.DbResource) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if resource == nil {
		return fmt.Errorf("resource is nil")
	}
	return r.db.WithContext(ctx).Create(resource).Error
}

// GetResourceByID loads a resource by ID.
func (r *GormRepository) GetResourceByID(ctx context.Context, id uint) (*entity.DbResource, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var resource entity.DbResource
	if err := r.db.WithContext(ctx).First(&resource, id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// ListResources returns all resources without their binary content.
func (r *GormRepository) ListResources(ctx context.Context) ([]entity.DbResource, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var resources []entity.DbResource
	if err := r.db.WithContext(ctx).Omit("content").Order("id ASC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}
