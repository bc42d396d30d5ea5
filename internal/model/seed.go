package model

import (
	"classhub/internal/auth"
	"classhub/internal/config"
	"classhub/internal/entity"
	"classhub/internal/role"
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SeedAdminUser creates the configured bootstrap admin on first run.
// Subsequent starts find the identifiers taken and do nothing.
func SeedAdminUser(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	name := strings.TrimSpace(cfg.AdminName)
	email := strings.TrimSpace(cfg.AdminEmail)
	password := cfg.AdminPassword
	if name == "" || email == "" || password == "" {
		return nil
	}

	exists, err := repo.ExistsUserByNameOrEmail(ctx, name, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	detail := &entity.DbUserDetail{
		URL: "http://bitson.com.ar",
		Bio: "Bootstrap administrator account.",
	}
	if err := repo.CreateUserDetail(ctx, detail); err != nil {
		return err
	}

	admin := &entity.DbUser{
		Name:          name,
		Email:         email,
		PasswordHash:  hash,
		RoleCode:      role.RoleAdmin,
		StatusCode:    role.StatusActive,
		ActivationKey: uuid.NewString(),
		UserDetailID:  &detail.ID,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		return err
	}

	logrus.WithField("name", name).Info("seeded bootstrap admin user")
	return nil
}
