package service

import (
	"classhub/internal/entity"
	"classhub/internal/model"
	"context"
	"strings"

	"gorm.io/gorm"
)

// fakeRepo 仅实现用户目录相关的方法，其余由内嵌接口兜底（调用即 panic）。
type fakeRepo struct {
	model.Repository
	users  []*entity.DbUser
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1}
}

func (r *fakeRepo) CreateUser(_ context.Context, user *entity.DbUser) error {
	for _, existing := range r.users {
		if existing.Name == user.Name || existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *fakeRepo) GetUserByID(_ context.Context, id uint) (*entity.DbUser, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetUserByLogin(_ context.Context, login string) (*entity.DbUser, error) {
	for _, user := range r.users {
		if user.Name == login || user.Email == login {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) ExistsUserByNameOrEmail(_ context.Context, name, email string) (bool, error) {
	for _, user := range r.users {
		if user.Name == name || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CountUsersByName(_ context.Context, name string, excludeID uint) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Name == name && user.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) CountUsersByEmail(_ context.Context, email string, excludeID uint) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Email == email && user.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) SearchUsers(_ context.Context, terms []string, params *entity.BaseParams) ([]entity.DbUser, *entity.Meta, error) {
	var matched []entity.DbUser
	for _, user := range r.users {
		name := strings.ToLower(user.Name)
		email := strings.ToLower(user.Email)
		ok := true
		for _, term := range terms {
			term = strings.ToLower(term)
			if !strings.Contains(name, term) && !strings.Contains(email, term) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, *user)
		}
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
	total := len(matched)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	meta := &entity.Meta{Total: int64(total), Page: int64(page), PageSize: int64(pageSize)}
	return matched[start:end], meta, nil
}

func (r *fakeRepo) ListUsersByIDs(_ context.Context, ids []uint) ([]entity.DbUser, error) {
	var result []entity.DbUser
	for _, id := range ids {
		for _, user := range r.users {
			if user.ID == id {
				result = append(result, *user)
			}
		}
	}
	return result, nil
}

func (r *fakeRepo) CountUsers(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeRepo) ApplyRelationUpdates(_ context.Context, updates []entity.UserRelationUpdate) error {
	for _, update := range updates {
		var target *entity.DbUser
		for _, user := range r.users {
			if user.ID == update.UserID {
				target = user
				break
			}
		}
		if target == nil {
			return gorm.ErrRecordNotFound
		}
		if update.Followers != nil {
			target.Followers = *update.Followers
		}
		if update.Following != nil {
			target.Following = *update.Following
		}
	}
	return nil
}
