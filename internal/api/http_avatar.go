package api

import (
	"classhub/internal/storage"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxAvatarBytes = 4 << 20

// UploadAvatar 上传头像。文件通过存储后端落盘/上云，
// 用户行只记录存储返回的相对标识。
func (h *HTTPHandler) UploadAvatar(c *gin.Context) {
	requestUser := CurrentUser(c)
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	if requestUser == nil || (requestUser.ID != id && !requestUser.IsAdmin()) {
		Forbidden(c, "cannot change another user's avatar")
		return
	}
	if h.storage == nil {
		ServiceUnavailable(c, "storage not available")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		MissingField(c, "avatar")
		return
	}
	if fileHeader.Size <= 0 || fileHeader.Size > maxAvatarBytes {
		BadRequest(c, ErrCodeInvalidRequest, "avatar must be between 1 byte and 4MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("failed to open uploaded avatar")
		InternalError(c, "failed to read avatar")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
	if err != nil {
		logrus.WithError(err).Error("failed to read uploaded avatar")
		InternalError(c, "failed to read avatar")
		return
	}
	if len(data) > maxAvatarBytes {
		BadRequest(c, ErrCodeInvalidRequest, "avatar exceeds 4MB")
		return
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	switch ext {
	case "png", "jpg", "jpeg", "gif", "webp":
	default:
		BadRequest(c, ErrCodeInvalidRequest, "unsupported avatar format")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	// 每个用户一个目录，与历史上传路径保持一致
	stored, err := h.storage.Save(ctx, data, storage.SaveOptions{
		Category:  fmt.Sprintf("avatars/user_%d", id),
		Extension: ext,
	})
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("failed to store avatar")
		ErrorResponse(c, http.StatusInternalServerError, ErrCodeAvatarUploadFailed, "failed to store avatar")
		return
	}

	if err := h.repo.UpdateUser(ctx, id, map[string]interface{}{"avatar": stored}); err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("failed to record avatar path")
		InternalError(c, "failed to update avatar")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": h.avatarURL(stored)})
}
