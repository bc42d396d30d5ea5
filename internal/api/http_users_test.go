package api

import (
	"classhub/internal/config"
	"classhub/internal/entity"
	"classhub/internal/model"
	"classhub/internal/role"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// stubUserRepo 仅覆盖资料编辑路径需要的方法。
type stubUserRepo struct {
	model.Repository
	users       map[uint]*entity.DbUser
	updateErr   error
	lastUpdates map[string]interface{}
}

func (r *stubUserRepo) GetUserByID(_ context.Context, id uint) (*entity.DbUser, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) CountUsersByName(_ context.Context, name string, excludeID uint) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Name == name && user.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (r *stubUserRepo) CountUsersByEmail(_ context.Context, email string, excludeID uint) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Email == email && user.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (r *stubUserRepo) UpdateUser(_ context.Context, id uint, updates map[string]interface{}) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.lastUpdates = updates
	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		user.Name = name
	}
	if email, ok := updates["email"].(string); ok {
		user.Email = email
	}
	return nil
}

func newProfileTestHandler(t *testing.T, repo model.Repository) *HTTPHandler {
	t.Helper()
	handler, err := NewHTTPHandler(config.Config{JWTSecret: "test-secret"}, repo, nil)
	if err != nil {
		t.Fatalf("unexpected error creating handler: %v", err)
	}
	return handler
}

func performProfileUpdate(handler *HTTPHandler, actor *RequestUser, id, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	router := gin.New()
	router.PATCH("/api/users/:id", func(c *gin.Context) {
		c.Set(currentUserContextKey, actor)
	}, handler.UpdateUser)

	req := httptest.NewRequest(http.MethodPatch, "/api/users/"+id, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func twoUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users: map[uint]*entity.DbUser{
			1: {ID: 1, Name: "ana", Email: "ana@example.com", RoleCode: role.RoleUser, StatusCode: role.StatusActive},
			2: {ID: 2, Name: "ben", Email: "ben@example.com", RoleCode: role.RoleUser, StatusCode: role.StatusActive},
		},
	}
}

func TestUpdateUserRejectsTakenEmail(t *testing.T) {
	repo := twoUserRepo()
	handler := newProfileTestHandler(t, repo)
	actor := &RequestUser{ID: 2, Name: "ben", RoleCode: role.RoleUser}

	w := performProfileUpdate(handler, actor, "2", `{"email":"ana@example.com"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeIdentifierTaken {
		t.Fatalf("expected code %s, got %s", ErrCodeIdentifierTaken, response.Code)
	}
	if repo.lastUpdates != nil {
		t.Fatal("expected no update to reach the repository")
	}
}

func TestUpdateUserRejectsTakenName(t *testing.T) {
	repo := twoUserRepo()
	handler := newProfileTestHandler(t, repo)
	actor := &RequestUser{ID: 2, Name: "ben", RoleCode: role.RoleUser}

	w := performProfileUpdate(handler, actor, "2", `{"name":"ana"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeIdentifierTaken {
		t.Fatalf("expected code %s, got %s", ErrCodeIdentifierTaken, response.Code)
	}
}

func TestUpdateUserChangesEmailWhenFree(t *testing.T) {
	repo := twoUserRepo()
	handler := newProfileTestHandler(t, repo)
	actor := &RequestUser{ID: 2, Name: "ben", RoleCode: role.RoleUser}

	w := performProfileUpdate(handler, actor, "2", `{"email":"new@example.com"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if got := repo.lastUpdates["email"]; got != "new@example.com" {
		t.Fatalf("expected email column update, got %v", got)
	}
}

func TestUpdateUserMapsDuplicateKey(t *testing.T) {
	// 可用性检查通过后并发写入仍可能撞上唯一索引
	repo := twoUserRepo()
	repo.updateErr = gorm.ErrDuplicatedKey
	handler := newProfileTestHandler(t, repo)
	actor := &RequestUser{ID: 2, Name: "ben", RoleCode: role.RoleUser}

	w := performProfileUpdate(handler, actor, "2", `{"email":"new@example.com"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeIdentifierTaken {
		t.Fatalf("expected code %s, got %s", ErrCodeIdentifierTaken, response.Code)
	}
}
