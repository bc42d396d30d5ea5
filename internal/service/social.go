package service

import (
	"classhub/internal/entity"
	"classhub/internal/model"
	"classhub/internal/relation"
	"context"
	"fmt"
)

// SocialGraph 是关注关系的唯一变更入口。
//
// 一条关注边冗余地记录两次：目标用户的 followers 列和发起者的
// following 列。两列从同一份解码快照重新编码，并在一个事务里落库，
// 因此并发的 follow/unfollow 不会留下只写了一半的边。
type SocialGraph struct {
	repo model.Repository
}

// NewSocialGraph creates a graph manager over the repository.
func NewSocialGraph(repo model.Repository) *SocialGraph {
	return &SocialGraph{repo: repo}
}

// Follow records actor following target. Following an already-followed
// user is a no-op, not an error. Edges are directional: nothing is
// implied about target following actor.
func (g *SocialGraph) Follow(ctx context.Context, actor, target *entity.DbUser) error {
	following, followers, err := decodeEdge(actor, target)
	if err != nil {
		return err
	}

	if following.Has(target.ID) && followers.Has(actor.ID) {
		return nil
	}

	following.Add(target.ID)
	followers.Add(actor.ID)
	return g.persistEdge(ctx, actor, target, following, followers)
}

// Unfollow removes the edge in both directions. Absence on either side
// is not an error.
func (g *SocialGraph) Unfollow(ctx context.Context, actor, target *entity.DbUser) error {
	following, followers, err := decodeEdge(actor, target)
	if err != nil {
		return err
	}

	if !following.Has(target.ID) && !followers.Has(actor.ID) {
		return nil
	}

	following.Remove(target.ID)
	followers.Remove(actor.ID)
	return g.persistEdge(ctx, actor, target, following, followers)
}

// FollowerCount returns the cardinality of the user's follower set; an
// unset column counts as zero.
func (g *SocialGraph) FollowerCount(user *entity.DbUser) (int, error) {
	set, err := relation.Decode(user.Followers)
	if err != nil {
		return 0, fmt.Errorf("decode followers of user %d: %w", user.ID, err)
	}
	return set.Len(), nil
}

// FollowingCount returns the cardinality of the user's following set.
func (g *SocialGraph) FollowingCount(user *entity.DbUser) (int, error) {
	set, err := relation.Decode(user.Following)
	if err != nil {
		return 0, fmt.Errorf("decode following of user %d: %w", user.ID, err)
	}
	return set.Len(), nil
}

// FollowerIDs returns the id set to resolve against the directory.
func (g *SocialGraph) FollowerIDs(user *entity.DbUser) ([]uint, error) {
	set, err := relation.Decode(user.Followers)
	if err != nil {
		return nil, fmt.Errorf("decode followers of user %d: %w", user.ID, err)
	}
	return set.IDs(), nil
}

// FollowingIDs returns the id set to resolve against the directory.
func (g *SocialGraph) FollowingIDs(user *entity.DbUser) ([]uint, error) {
	set, err := relation.Decode(user.Following)
	if err != nil {
		return nil, fmt.Errorf("decode following of user %d: %w", user.ID, err)
	}
	return set.IDs(), nil
}

func decodeEdge(actor, target *entity.DbUser) (following, followers relation.Set, err error) {
	if actor == nil || target == nil || actor.ID == 0 || target.ID == 0 {
		return nil, nil, fmt.Errorf("relation requires two persisted users")
	}
	following, err = relation.Decode(actor.Following)
	if err != nil {
		return nil, nil, fmt.Errorf("decode following of user %d: %w", actor.ID, err)
	}
	followers, err = relation.Decode(target.Followers)
	if err != nil {
		return nil, nil, fmt.Errorf("decode followers of user %d: %w", target.ID, err)
	}
	return following, followers, nil
}

// persistEdge re-encodes both mutated sets and hands them to the
// repository as one atomic batch, then refreshes the in-memory fields.
func (g *SocialGraph) persistEdge(ctx context.Context, actor, target *entity.DbUser, following, followers relation.Set) error {
	encodedFollowing := following.Encode()
	encodedFollowers := followers.Encode()

	updates := []entity.UserRelationUpdate{
		{UserID: actor.ID, Following: &encodedFollowing},
		{UserID: target.ID, Followers: &encodedFollowers},
	}
	if actor.ID == target.ID {
		// 同一行的两列合并成一次更新
		updates = []entity.UserRelationUpdate{
			{UserID: actor.ID, Following: &encodedFollowing, Followers: &encodedFollowers},
		}
	}

	if err := g.repo.ApplyRelationUpdates(ctx, updates); err != nil {
		return fmt.Errorf("persist relation edge %d->%d: %w", actor.ID, target.ID, err)
	}

	actor.Following = encodedFollowing
	target.Followers = encodedFollowers
	return nil
}
