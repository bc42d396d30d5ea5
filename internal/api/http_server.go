package api

import (
	"classhub/internal/auth"
	"classhub/internal/config"
	"classhub/internal/entity"
	"classhub/internal/model"
	"classhub/internal/role"
	"classhub/internal/service"
	"classhub/internal/storage"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager

	// 服务层
	directory *service.Directory
	graph     *service.SocialGraph
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	directory := service.NewDirectory(repo)

	return &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		directory:         directory,
		graph:             directory.Graph(),
	}, nil
}

// normalisePublicBase 规范化公共 URL 基础路径
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

// makeUserSummary resolves the stored codes to display labels. An
// undefined code is a configuration defect and surfaces as an error.
func (h *HTTPHandler) makeUserSummary(user *entity.DbUser) (entity.UserSummary, error) {
	if user == nil {
		return entity.UserSummary{}, nil
	}
	roleLabel, err := role.RoleLabel(user.RoleCode)
	if err != nil {
		return entity.UserSummary{}, err
	}
	statusLabel, err := role.StatusLabel(user.StatusCode)
	if err != nil {
		return entity.UserSummary{}, err
	}
	followerCount, err := h.graph.FollowerCount(user)
	if err != nil {
		return entity.UserSummary{}, err
	}
	followingCount, err := h.graph.FollowingCount(user)
	if err != nil {
		return entity.UserSummary{}, err
	}
	return entity.UserSummary{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           roleLabel,
		Status:         statusLabel,
		Avatar:         h.avatarURL(user.Avatar),
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
		CreatedAt:      user.CreatedAt,
	}, nil
}

func (h *HTTPHandler) avatarURL(stored string) string {
	trimmed := strings.TrimSpace(stored)
	if trimmed == "" {
		return ""
	}
	return h.storagePublicBase + "/" + strings.TrimLeft(trimmed, "/")
}

func (h *HTTPHandler) summariseUsers(users []entity.DbUser) ([]entity.UserSummary, error) {
	summaries := make([]entity.UserSummary, 0, len(users))
	for idx := range users {
		summary, err := h.makeUserSummary(&users[idx])
		if err != nil {
			logrus.WithError(err).WithField("user_id", users[idx].ID).Error("failed to summarise user")
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
