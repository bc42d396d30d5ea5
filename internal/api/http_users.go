package api

import (
	"classhub/internal/auth"
	"classhub/internal/entity"
	"classhub/internal/role"
	"classhub/internal/service"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SearchUsers 多关键字用户搜索。关键字按空白切分，每个词都必须命中
// 姓名或邮箱之一；空关键字匹配全部用户（用户索引页的默认视图）。
func (h *HTTPHandler) SearchUsers(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user directory not available")
		return
	}

	var query entity.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}
	if query.PageSize > 100 {
		query.PageSize = 100
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, meta, err := h.directory.Search(ctx, query.Keyword, &query.BaseParams)
	if err != nil {
		logrus.WithError(err).Error("failed to search users")
		InternalError(c, "failed to search users")
		return
	}

	summaries, err := h.summariseUsers(users)
	if err != nil {
		InternalError(c, "failed to load users")
		return
	}

	c.JSON(http.StatusOK, entity.UserListResponse{Users: summaries, Meta: meta})
}

// GetUser 个人资料页查询。
func (h *HTTPHandler) GetUser(c *gin.Context) {
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

	summary, err := h.makeUserSummary(user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("failed to summarise user")
		InternalError(c, "failed to load user")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// CreateUser 管理端创建用户。
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	var req entity.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	roleCode := role.RoleUser
	if req.RoleCode != nil {
		roleCode = *req.RoleCode
	}
	statusCode := role.StatusNew
	if req.StatusCode != nil {
		statusCode = *req.StatusCode
	}
	if !role.ValidRoleCode(roleCode) || !role.ValidStatusCode(statusCode) {
		BadRequest(c, ErrCodeInvalidClassCode, "invalid role or status code")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.directory.Create(ctx, service.CreateUserParams{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		RoleCode:   roleCode,
		StatusCode: statusCode,
		OpenID:     req.OpenID,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateIdentifier) {
			BadRequest(c, ErrCodeIdentifierTaken, "name or email already taken")
			return
		}
		logrus.WithError(err).Error("failed to create user")
		InternalError(c, "failed to create user")
		return
	}

	summary, err := h.makeUserSummary(user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to summarise user")
		InternalError(c, "failed to load created user")
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// UpdateUser 资料编辑。本人可改名字、邮箱、密码；角色与状态仅管理员可改。
func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	requestUser := CurrentUser(c)
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	if requestUser == nil || (requestUser.ID != id && !requestUser.IsAdmin()) {
		Forbidden(c, "cannot edit another user's profile")
		return
	}

	var req entity.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
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
		logrus.WithError(err).WithField("user_id", id).Error("failed to load user for update")
		InternalError(c, "failed to update user")
		return
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			MissingField(c, "name")
			return
		}
		if name != user.Name {
			available, err := h.directory.CheckNameAvailable(ctx, name, user.ID)
			if err != nil {
				logrus.WithError(err).Error("failed to check name availability")
				InternalError(c, "failed to update user")
				return
			}
			if !available {
				BadRequest(c, ErrCodeIdentifierTaken, "name already taken")
				return
			}
			updates["name"] = name
		}
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			MissingField(c, "email")
			return
		}
		if email != user.Email {
			available, err := h.directory.CheckEmailAvailable(ctx, email, user.ID)
			if err != nil {
				logrus.WithError(err).Error("failed to check email availability")
				InternalError(c, "failed to update user")
				return
			}
			if !available {
				BadRequest(c, ErrCodeIdentifierTaken, "email already taken")
				return
			}
			updates["email"] = email
		}
	}

	if req.Password != nil {
		password := strings.TrimSpace(*req.Password)
		if password == "" {
			MissingField(c, "password")
			return
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			logrus.WithError(err).Error("failed to hash password for update")
			InternalError(c, "failed to update user")
			return
		}
		updates["password_hash"] = hash
	}

	if req.RoleCode != nil {
		if !requestUser.IsAdmin() {
			Forbidden(c, "only admins can change roles")
			return
		}
		if !role.ValidRoleCode(*req.RoleCode) {
			BadRequest(c, ErrCodeInvalidClassCode, "invalid role code")
			return
		}
		updates["role_code"] = *req.RoleCode
	}

	if req.StatusCode != nil {
		if !requestUser.IsAdmin() {
			Forbidden(c, "only admins can change account status")
			return
		}
		if !role.ValidStatusCode(*req.StatusCode) {
			BadRequest(c, ErrCodeInvalidClassCode, "invalid status code")
			return
		}
		updates["status_code"] = *req.StatusCode
	}

	if len(updates) == 0 {
		summary, err := h.makeUserSummary(user)
		if err != nil {
			InternalError(c, "failed to load user")
			return
		}
		c.JSON(http.StatusOK, summary)
		return
	}

	if err := h.repo.UpdateUser(ctx, user.ID, updates); err != nil {
		// 并发改名/改邮箱仍可能撞上唯一索引
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeIdentifierTaken, "name or email already taken")
			return
		}
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to update user")
		InternalError(c, "failed to update user")
		return
	}

	updated, err := h.directory.GetByID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to reload user after update")
		InternalError(c, "failed to load updated user")
		return
	}

	summary, err := h.makeUserSummary(updated)
	if err != nil {
		InternalError(c, "failed to load updated user")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CheckName 改名前的可用性检查。
func (h *HTTPHandler) CheckName(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		MissingField(c, "name")
		return
	}

	var excludeID uint
	if raw := strings.TrimSpace(c.Query("exclude_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			BadRequest(c, ErrCodeInvalidRequest, "invalid exclude_id")
			return
		}
		excludeID = uint(parsed)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	available, err := h.directory.CheckNameAvailable(ctx, name, excludeID)
	if err != nil {
		logrus.WithError(err).Error("failed to check name availability")
		InternalError(c, "failed to check name")
		return
	}

	c.JSON(http.StatusOK, entity.NameAvailabilityResponse{Name: name, Available: available})
}

func parseUserID(c *gin.Context) (uint, bool) {
	idValue := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(idValue, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid user id")
		return 0, false
	}
	return uint(id), true
}
