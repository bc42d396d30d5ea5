package service

import (
	"classhub/internal/entity"
	"classhub/internal/role"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryCreateAndAuthenticate(t *testing.T) {
	repo := newFakeRepo()
	dir := NewDirectory(repo)
	ctx := context.Background()

	user, err := dir.Create(ctx, CreateUserParams{
		Name:       "bitson",
		Email:      "bitson@bitson.com.ar",
		Password:   "bitson",
		RoleCode:   role.RoleAdmin,
		StatusCode: role.StatusActive,
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.NotEmpty(t, user.ActivationKey)
	assert.NotEqual(t, "bitson", user.PasswordHash, "password must never be stored in clear")

	// 用户名登录
	found, ok, err := dir.Authenticate(ctx, "bitson", "bitson")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, user.ID, found.ID)

	// 邮箱登录
	found, ok, err = dir.Authenticate(ctx, "bitson@bitson.com.ar", "bitson")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, user.ID, found.ID)

	// 密码错误
	_, ok, err = dir.Authenticate(ctx, "bitson", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	// 未知登录名不是错误
	found, ok, err = dir.Authenticate(ctx, "nobody", "bitson")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, found)
}

func TestDirectoryCreateRejectsDuplicates(t *testing.T) {
	repo := newFakeRepo()
	dir := NewDirectory(repo)
	ctx := context.Background()

	_, err := dir.Create(ctx, CreateUserParams{
		Name: "alice", Email: "alice@example.com", Password: "secret",
		RoleCode: role.RoleUser, StatusCode: role.StatusNew,
	})
	require.NoError(t, err)

	// 同名不同邮箱
	_, err = dir.Create(ctx, CreateUserParams{
		Name: "alice", Email: "other@example.com", Password: "secret",
		RoleCode: role.RoleUser, StatusCode: role.StatusNew,
	})
	assert.ErrorIs(t, err, ErrDuplicateIdentifier)

	// 同邮箱不同名
	_, err = dir.Create(ctx, CreateUserParams{
		Name: "alice2", Email: "alice@example.com", Password: "secret",
		RoleCode: role.RoleUser, StatusCode: role.StatusNew,
	})
	assert.ErrorIs(t, err, ErrDuplicateIdentifier)

	// 重复创建失败后目录里仍只有一个用户
	count, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDirectoryCreateValidatesCodes(t *testing.T) {
	repo := newFakeRepo()
	dir := NewDirectory(repo)
	ctx := context.Background()

	_, err := dir.Create(ctx, CreateUserParams{
		Name: "bob", Email: "bob@example.com", Password: "secret",
		RoleCode: 42, StatusCode: role.StatusNew,
	})
	assert.ErrorIs(t, err, role.ErrUndefinedCode)

	_, err = dir.Create(ctx, CreateUserParams{
		Name: "bob", Email: "bob@example.com", Password: "secret",
		RoleCode: role.RoleUser, StatusCode: -3,
	})
	assert.ErrorIs(t, err, role.ErrUndefinedCode)
}

func TestDirectorySearch(t *testing.T) {
	repo := newFakeRepo()
	dir := NewDirectory(repo)
	ctx := context.Background()

	seed := []CreateUserParams{
		{Name: "anna.garcia", Email: "anna@school.edu", Password: "x", RoleCode: role.RoleUser, StatusCode: role.StatusActive},
		{Name: "annabel", Email: "ab@school.edu", Password: "x", RoleCode: role.RoleStaff, StatusCode: role.StatusActive},
		{Name: "carlos", Email: "carlos@other.org", Password: "x", RoleCode: role.RoleUser, StatusCode: role.StatusActive},
	}
	for _, params := range seed {
		_, err := dir.Create(ctx, params)
		require.NoError(t, err)
	}

	// 单个关键词匹配名称或邮箱
	users, _, err := dir.Search(ctx, "anna", nil)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	// 多个关键词取交集：比单关键词的结果只会更少
	users, _, err = dir.Search(ctx, "anna garcia", nil)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "anna.garcia", users[0].Name)

	// 大小写不敏感
	users, _, err = dir.Search(ctx, "CARLOS", nil)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	// 空关键词返回全部用户
	users, _, err = dir.Search(ctx, "   ", nil)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	// 分页在存储层完成：第二页只剩一个
	users, meta, err := dir.Search(ctx, "", &entity.BaseParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	require.NotNil(t, meta)
	assert.EqualValues(t, 3, meta.Total)
	assert.EqualValues(t, 2, meta.Page)

	// 无匹配
	users, _, err = dir.Search(ctx, "zzz", nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestDirectoryGetByID(t *testing.T) {
	repo := newFakeRepo()
	dir := NewDirectory(repo)
	ctx := context.Background()

	user, err := dir.Create(ctx, CreateUserParams{
		Name: "dana", Email: "dana@example.com", Password: "secret",
		RoleCode: role.RoleUser, StatusCode: role.StatusActive,
	})
	require.NoError(t, err)

	found, err := dir.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "dana", found.Name)

	_, err = dir.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirectoryCheckNameAvailable(t *testing.T) {
	repo := newFakeRepo()
	dir := NewDirectory(repo)
	ctx := context.Background()

	user, err := dir.Create(ctx, CreateUserParams{
		Name: "erik", Email: "erik@example.com", Password: "secret",
		RoleCode: role.RoleUser, StatusCode: role.StatusActive,
	})
	require.NoError(t, err)

	available, err := dir.CheckNameAvailable(ctx, "erik", 0)
	require.NoError(t, err)
	assert.False(t, available)

	// 自己改名时排除自己
	available, err = dir.CheckNameAvailable(ctx, "erik", user.ID)
	require.NoError(t, err)
	assert.True(t, available)

	available, err = dir.CheckNameAvailable(ctx, "fresh-name", 0)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestDirectoryCheckEmailAvailable(t *testing.T) {
	repo := newFakeRepo()
	dir := NewDirectory(repo)
	ctx := context.Background()

	user, err := dir.Create(ctx, CreateUserParams{
		Name: "gina", Email: "gina@example.com", Password: "secret",
		RoleCode: role.RoleUser, StatusCode: role.StatusActive,
	})
	require.NoError(t, err)

	available, err := dir.CheckEmailAvailable(ctx, "gina@example.com", 0)
	require.NoError(t, err)
	assert.False(t, available)

	// 本人保留自己的邮箱时不算占用
	available, err = dir.CheckEmailAvailable(ctx, "gina@example.com", user.ID)
	require.NoError(t, err)
	assert.True(t, available)

	available, err = dir.CheckEmailAvailable(ctx, "fresh@example.com", 0)
	require.NoError(t, err)
	assert.True(t, available)
}
