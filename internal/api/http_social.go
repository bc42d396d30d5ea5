package api

import (
	"classhub/internal/entity"
	"classhub/internal/service"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Follow 当前用户关注目标用户。重复关注是无操作，不是错误。
func (h *HTTPHandler) Follow(c *gin.Context) {
	h.mutateEdge(c, h.graph.Follow)
}

// Unfollow 取消关注。本来就没关注同样是无操作。
func (h *HTTPHandler) Unfollow(c *gin.Context) {
	h.mutateEdge(c, h.graph.Unfollow)
}

func (h *HTTPHandler) mutateEdge(c *gin.Context, op func(context.Context, *entity.DbUser, *entity.DbUser) error) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	targetID, ok := parseUserID(c)
	if !ok {
		return
	}
	if targetID == requestUser.ID {
		BadRequest(c, ErrCodeCannotFollowSelf, "cannot follow yourself")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	actor, err := h.directory.GetByID(ctx, requestUser.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", requestUser.ID).Error("failed to load actor")
		InternalError(c, "failed to update relation")
		return
	}

	target, err := h.directory.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).WithField("user_id", targetID).Error("failed to load target")
		InternalError(c, "failed to update relation")
		return
	}

	if err := op(ctx, actor, target); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"actor_id":  actor.ID,
			"target_id": target.ID,
		}).Error("failed to persist relation change")
		InternalError(c, "failed to update relation")
		return
	}

	summary, err := h.makeUserSummary(target)
	if err != nil {
		InternalError(c, "failed to load user")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListFollowers 返回目标用户的关注者列表。
func (h *HTTPHandler) ListFollowers(c *gin.Context) {
	h.listRelated(c, h.directory.Followers)
}

// ListFollowing 返回目标用户关注的人。
func (h *HTTPHandler) ListFollowing(c *gin.Context) {
	h.listRelated(c, h.directory.Following)
}

func (h *HTTPHandler) listRelated(c *gin.Context, resolve func(context.Context, *entity.DbUser) ([]entity.DbUser, error)) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.directory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).WithField("user_id", id).Error("failed to load user")
		InternalError(c, "failed to load user")
		return
	}

	related, err := resolve(ctx, user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("failed to resolve relations")
		InternalError(c, "failed to load relations")
		return
	}

	summaries, err := h.summariseUsers(related)
	if err != nil {
		InternalError(c, "failed to load relations")
		return
	}
	c.JSON(http.StatusOK, entity.UserListResponse{Users: summaries})
}
