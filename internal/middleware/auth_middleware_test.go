package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gkharab/projecthub-api/internal/models"
	"github.com/gkharab/projecthub-api/internal/repository"
	"github.com/gkharab/projecthub-api/internal/utils"
)

type stubUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func (s *stubUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (s *stubUserRepo) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, repository.ErrNotFound
}
func (s *stubUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (s *stubUserRepo) Insert(context.Context, *models.User) error         { return nil }
func (s *stubUserRepo) UpdateRole(context.Context, primitive.ObjectID, models.Role) error {
	return nil
}
func (s *stubUserRepo) List(context.Context, repository.Page) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (s *stubUserRepo) CountByRole(context.Context, models.Role) (int64, error) { return 0, nil }
func (s *stubUserRepo) Count(context.Context) (int64, error)                    { return 0, nil }

func newTestMiddleware(t *testing.T, role models.Role) (*AuthMiddleware, string, *models.User) {
	t.Helper()
	secret := []byte("test-secret")
	user := &models.User{ID: primitive.NewObjectID(), Email: "mw@test.com", Role: role}
	repo := &stubUserRepo{users: map[primitive.ObjectID]*models.User{user.ID: user}}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, secret)
	require.NoError(t, err)

	return NewAuthMiddleware(secret, repo), token, user
}

func TestJWTAuthPassesActorToHandler(t *testing.T) {
	mw, token, user := newTestMiddleware(t, models.RoleManager)

	handler := mw.JWTAuth(func(w http.ResponseWriter, r *http.Request) {
		actor, err := GetActor(r)
		require.NoError(t, err)
		assert.Equal(t, user.ID, actor.ID)
		assert.Equal(t, models.RoleManager, actor.Role)
		w.WriteHeader(http.StatusOK)
	}, "manager:read")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/my", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	mw, _, _ := newTestMiddleware(t, models.RoleUser)

	handler := mw.JWTAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/my", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsBadToken(t *testing.T) {
	mw, _, _ := newTestMiddleware(t, models.RoleUser)

	handler := mw.JWTAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/my", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthEnforcesPermission(t *testing.T) {
	mw, token, _ := newTestMiddleware(t, models.RoleUser)

	handler := mw.JWTAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}, "admin:read")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthUsesStoredRoleNotTokenRole(t *testing.T) {
	secret := []byte("test-secret")
	user := &models.User{ID: primitive.NewObjectID(), Email: "demoted@test.com", Role: models.RoleUser}
	repo := &stubUserRepo{users: map[primitive.ObjectID]*models.User{user.ID: user}}
	mw := NewAuthMiddleware(secret, repo)

	// token still claims ADMIN, storage says USER
	token, err := utils.GenerateToken(user.ID, user.Email, models.RoleAdmin, secret)
	require.NoError(t, err)

	handler := mw.JWTAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}, "admin:read")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthRejectsDeletedAccount(t *testing.T) {
	secret := []byte("test-secret")
	repo := &stubUserRepo{users: map[primitive.ObjectID]*models.User{}}
	mw := NewAuthMiddleware(secret, repo)

	token, err := utils.GenerateToken(primitive.NewObjectID(), "gone@test.com", models.RoleUser, secret)
	require.NoError(t, err)

	handler := mw.JWTAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/my", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
