package api

import (
	"classhub/internal/entity"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Login 以用户名或邮箱加密码换取会话 Token。
// 认证失败只返回一条“无效凭证”，不暴露是哪一半错了。
func (h *HTTPHandler) Login(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user directory not available")
		return
	}

	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, ok, err := h.directory.Authenticate(ctx, req.Login, req.Password)
	if err != nil {
		logrus.WithError(err).Error("failed to authenticate user")
		InternalError(c, "failed to process login")
		return
	}
	if user == nil || !ok {
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid credentials")
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		InternalError(c, "failed to create session")
		return
	}

	summary, err := h.makeUserSummary(user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to summarise user")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      summary,
	})
}

// Me 返回当前认证用户的资料。
func (h *HTTPHandler) Me(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.directory.GetByID(ctx, requestUser.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", requestUser.ID).Error("failed to load user profile")
		InternalError(c, "failed to load profile")
		return
	}

	summary, err := h.makeUserSummary(user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to summarise user")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, summary)
}
