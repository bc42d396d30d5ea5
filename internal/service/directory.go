package service

import (
	"classhub/internal/auth"
	"classhub/internal/entity"
	"classhub/internal/model"
	"classhub/internal/role"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Directory 聚合用户目录操作：创建、认证、搜索、按 ID 查找。
// 视图层只与 Directory 和 SocialGraph 交互，不直接触碰仓库。
type Directory struct {
	repo  model.Repository
	graph *SocialGraph
}

// NewDirectory creates a user directory backed by the repository.
func NewDirectory(repo model.Repository) *Directory {
	return &Directory{
		repo:  repo,
		graph: NewSocialGraph(repo),
	}
}

// Graph exposes the social graph manager sharing this directory's store.
func (d *Directory) Graph() *SocialGraph {
	return d.graph
}

// CreateUserParams carries the fields for a new account.
type CreateUserParams struct {
	Name       string
	Email      string
	Password   string
	RoleCode   int
	StatusCode int
	OpenID     string
	Avatar     string
}

// Create registers a new user. Name and email must be globally unique;
// the check runs before any password hashing so a duplicate create
// leaves no partial state. Duplicates surface as ErrDuplicateIdentifier.
func (d *Directory) Create(ctx context.Context, params CreateUserParams) (*entity.DbUser, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.TrimSpace(params.Email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required")
	}

	if !role.ValidRoleCode(params.RoleCode) {
		return nil, fmt.Errorf("create user: %w", roleCodeError(params.RoleCode))
	}
	if !role.ValidStatusCode(params.StatusCode) {
		return nil, fmt.Errorf("create user: %w", statusCodeError(params.StatusCode))
	}

	exists, err := d.repo.ExistsUserByNameOrEmail(ctx, name, email)
	if err != nil {
		return nil, fmt.Errorf("check identifier uniqueness: %w", err)
	}
	if exists {
		return nil, ErrDuplicateIdentifier
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.DbUser{
		Name:          name,
		Email:         email,
		PasswordHash:  hash,
		RoleCode:      params.RoleCode,
		StatusCode:    params.StatusCode,
		OpenID:        strings.TrimSpace(params.OpenID),
		Avatar:        strings.TrimSpace(params.Avatar),
		ActivationKey: uuid.NewString(),
	}

	if err := d.repo.CreateUser(ctx, user); err != nil {
		// 并发创建仍可能撞上唯一索引
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentifier
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate looks up the user whose name or email equals login,
// case-sensitively, and checks the password. An unknown login is not an
// error: the result is (nil, false, nil).
func (d *Directory) Authenticate(ctx context.Context, login, password string) (*entity.DbUser, bool, error) {
	user, err := d.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lookup login: %w", err)
	}
	return user, auth.CheckPassword(user.PasswordHash, password), nil
}

// Search splits keywords on whitespace; every term must match name or
// email (case-insensitive substring). An empty keyword string matches
// all users — that is the user-index page default. Pagination happens
// in the store.
func (d *Directory) Search(ctx context.Context, keywords string, params *entity.BaseParams) ([]entity.DbUser, *entity.Meta, error) {
	return d.repo.SearchUsers(ctx, strings.Fields(keywords), params)
}

// GetByID returns the user or ErrNotFound.
func (d *Directory) GetByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	user, err := d.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// CheckNameAvailable reports whether no other user holds the candidate
// name. excludeID skips the user being renamed.
func (d *Directory) CheckNameAvailable(ctx context.Context, name string, excludeID uint) (bool, error) {
	count, err := d.repo.CountUsersByName(ctx, strings.TrimSpace(name), excludeID)
	if err != nil {
		return false, fmt.Errorf("count users by name: %w", err)
	}
	return count == 0, nil
}

// CheckEmailAvailable reports whether no other user holds the candidate
// email. excludeID skips the user being edited.
func (d *Directory) CheckEmailAvailable(ctx context.Context, email string, excludeID uint) (bool, error) {
	count, err := d.repo.CountUsersByEmail(ctx, strings.TrimSpace(email), excludeID)
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return count == 0, nil
}

// Followers resolves the user's follower id set against the directory.
func (d *Directory) Followers(ctx context.Context, user *entity.DbUser) ([]entity.DbUser, error) {
	ids, err := d.graph.FollowerIDs(user)
	if err != nil {
		return nil, err
	}
	return d.repo.ListUsersByIDs(ctx, ids)
}

// Following resolves the user's following id set against the directory.
func (d *Directory) Following(ctx context.Context, user *entity.DbUser) ([]entity.DbUser, error) {
	ids, err := d.graph.FollowingIDs(user)
	if err != nil {
		return nil, err
	}
	return d.repo.ListUsersByIDs(ctx, ids)
}

func roleCodeError(code int) error {
	_, err := role.RoleLabel(code)
	return err
}

func statusCodeError(code int) error {
	_, err := role.StatusLabel(code)
	return err
}
