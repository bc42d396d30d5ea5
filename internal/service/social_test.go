package service

import (
	"classhub/internal/entity"
	"classhub/internal/role"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T, dir *Directory, names ...string) []*entity.DbUser {
	t.Helper()
	users := make([]*entity.DbUser, 0, len(names))
	for _, name := range names {
		user, err := dir.Create(context.Background(), CreateUserParams{
			Name:       name,
			Email:      name + "@example.com",
			Password:   "secret",
			RoleCode:   role.RoleUser,
			StatusCode: role.StatusActive,
		})
		require.NoError(t, err)
		users = append(users, user)
	}
	return users
}

func TestFollowRecordsBothSides(t *testing.T) {
	repo := newFakeRepo()
	dir := NewDirectory(repo)
	graph := dir.Graph()
	ctx := context.Background()

	users := seedUsers(t, dir, "ana", "ben")
	ana, ben := users[0], users[1]

	require.NoError(t, graph.Follow(ctx, ana, ben))

	// 边在两列中各记录一次
	followingCount, err := graph.FollowingCount(ana)
	require.NoError(t, err)
	assert.Equal(t, 1, followingCount)

	followerCount, err := graph.FollowerCount(ben)
	require.NoError(t, err)
	assert.Equal(t, 1, followerCount)

	// 方向性：反向没有任何记录
	followerCount, err = graph.FollowerCount(ana)
	require.NoError(t, err)
	assert.Zero(t, followerCount)

	followingCount, err = graph.FollowingCount(ben)
	require.NoError(t, err)
	assert.Zero(t, followingCount)

	// 落库后的列与内存中的一致
	stored, err := dir.GetByID(ctx, ben.ID)
	require.NoError(t, err)
	assert.Equal(t, ben.Followers, stored.Followers)
}

func TestFollowIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	dir := NewDirectory(repo)
	graph := dir.Graph()
	ctx := context.Background()

	users := seedUsers(t, dir, "ana", "ben")
	ana, ben := users[0], users[1]

	require.NoError(t, graph.Follow(ctx, ana, ben))
	require.NoError(t, graph.Follow(ctx, ana, ben))

	count, err := graph.FollowerCount(ben)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUnfollowRemovesBothSides(t *testing.T) {
	repo := newFakeRepo()
	dir := NewDirectory(repo)
	graph := dir.Graph()
	ctx := context.Background()

	users := seedUsers(t, dir, "ana", "ben")
	ana, ben := users[0], users[1]

	require.NoError(t, graph.Follow(ctx, ana, ben))
	require.NoError(t, graph.Unfollow(ctx, ana, ben))

	followerCount, err := graph.FollowerCount(ben)
	require.NoError(t, err)
	assert.Zero(t, followerCount)

	followingCount, err := graph.FollowingCount(ana)
	require.NoError(t, err)
	assert.Zero(t, followingCount)

	// 取消一条不存在的边是 no-op
	require.NoError(t, graph.Unfollow(ctx, ana, ben))
}

func TestFollowPreservesOtherEdges(t *testing.T) {
	repo := newFakeRepo()
	dir := NewDirectory(repo)
	graph := dir.Graph()
	ctx := context.Background()

	users := seedUsers(t, dir, "ana", "ben", "carla")
	ana, ben, carla := users[0], users[1], users[2]

	require.NoError(t, graph.Follow(ctx, ana, ben))
	require.NoError(t, graph.Follow(ctx, carla, ben))
	require.NoError(t, graph.Follow(ctx, ana, carla))

	require.NoError(t, graph.Unfollow(ctx, ana, ben))

	// carla -> ben 不受影响
	ids, err := graph.FollowerIDs(ben)
	require.NoError(t, err)
	assert.Equal(t, []uint{carla.ID}, ids)

	// ana -> carla 不受影响
	ids, err = graph.FollowingIDs(ana)
	require.NoError(t, err)
	assert.Equal(t, []uint{carla.ID}, ids)
}

func TestFollowersResolveAgainstDirectory(t *testing.T) {
	repo := newFakeRepo()
	dir := NewDirectory(repo)
	graph := dir.Graph()
	ctx := context.Background()

	users := seedUsers(t, dir, "ana", "ben", "carla")
	ana, ben, carla := users[0], users[1], users[2]

	require.NoError(t, graph.Follow(ctx, ana, ben))
	require.NoError(t, graph.Follow(ctx, carla, ben))

	followers, err := dir.Followers(ctx, ben)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	names := []string{followers[0].Name, followers[1].Name}
	assert.ElementsMatch(t, []string{"ana", "carla"}, names)

	following, err := dir.Following(ctx, ana)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "ben", following[0].Name)
}

func TestCountsTreatUnsetColumnsAsZero(t *testing.T) {
	graph := NewSocialGraph(newFakeRepo())
	user := &entity.DbUser{ID: 1}

	count, err := graph.FollowerCount(user)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = graph.FollowingCount(user)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCorruptColumnSurfacesError(t *testing.T) {
	graph := NewSocialGraph(newFakeRepo())
	user := &entity.DbUser{ID: 1, Followers: "1,garbage"}

	_, err := graph.FollowerCount(user)
	assert.Error(t, err)
}

func TestFollowRequiresPersistedUsers(t *testing.T) {
	graph := NewSocialGraph(newFakeRepo())
	err := graph.Follow(context.Background(), &entity.DbUser{}, &entity.DbUser{ID: 2})
	assert.Error(t, err)
}
