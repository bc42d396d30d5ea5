package sql

import (
	"classhub/internal/entity"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CreateUser persists a new user record.
func (r *GormRepository) CreateUser(ctx context.Context, user *entity.DbUser) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdateUser updates an existing user entry.
func (r *GormRepository) UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid user id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", id).Updates(updates).Error
}

// GetUserByID loads a user by ID.
func (r *GormRepository) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByLogin loads the user whose name or email equals the login,
// exactly and case-sensitively.
func (r *GormRepository) GetUserByLogin(ctx context.Context, login string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(login) == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("name = ? OR email = ?", login, login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsUserByNameOrEmail reports whether any user already holds the name
// or the email. The comparison is case-sensitive, as stored.
func (r *GormRepository) ExistsUserByNameOrEmail(ctx context.Context, name, email string) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DbUser{}).
		Where("name = ? OR email = ?", name, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountUsersByName counts users holding the name, excluding one id.
func (r *GormRepository) CountUsersByName(ctx context.Context, name string, excludeID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountUsersByEmail counts users holding the email, excluding one id.
func (r *GormRepository) CountUsersByEmail(ctx context.Context, email string, excludeID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SearchUsers returns a page of users matching every term against name or
// email, case-insensitively. No terms means no filter: all users match.
func (r *GormRepository) SearchUsers(ctx context.Context, terms []string, params *entity.BaseParams) ([]entity.DbUser, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbUser{})
	for _, term := range terms {
		trimmed := strings.TrimSpace(term)
		if trimmed == "" {
			continue
		}
		kw := "%" + strings.ToLower(trimmed) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", kw, kw)
	}

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

	var users []entity.DbUser
	if err := query.Order("id ASC").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return users, meta, nil
}

// ListUsersByIDs loads the users for a batch of ids.
func (r *GormRepository) ListUsersByIDs(ctx context.Context, ids []uint) ([]entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if len(ids) == 0 {
		return []entity.DbUser{}, nil
	}
	var users []entity.DbUser
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsers returns total user count.
func (r *GormRepository) CountUsers(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ApplyRelationUpdates writes the encoded relation columns for a batch of
// users inside one transaction, so the two sides of a follow edge never
// land independently.
func (r *GormRepository) ApplyRelationUpdates(ctx context.Context, updates []entity.UserRelationUpdate) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			if update.UserID == 0 {
				return fmt.Errorf("invalid user id in relation update")
			}
			columns := make(map[string]interface{}, 2)
			if update.Followers != nil {
				columns["followers"] = *update.Followers
			}
			if update.Following != nil {
				columns["following"] = *update.Following
			}
			if len(columns) == 0 {
				continue
			}
			result := tx.Model(&entity.DbUser{}).Where("id = ?", update.UserID).Updates(columns)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

// CreateUserDetail persists a one-to-one detail record.
func (r *GormRepository) CreateUserDetail(ctx context.Context, detail *entity.DbUserDetail) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if detail == nil {
		return fmt.Errorf("user detail is nil")
	}
	return r.db.WithContext(ctx).Create(detail).Error
}

// GetUserDetailByID loads a detail record by ID.
func (r *GormRepository) GetUserDetailByID(ctx context.Context, id uint) (*entity.DbUserDetail, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var detail entity.DbUserDetail
	if err := r.db.WithContext(ctx).First(&detail, id).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}
