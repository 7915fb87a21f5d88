package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pharma-backend/internal/auth"
	"pharma-backend/internal/config"
	"pharma-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[int]*models.User
}

func (f *fakeUsers) Get(ctx context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	return u, nil
}

func newAuthFixture() (*AuthMiddleware, *auth.JWTManager, *fakeUsers) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "pharma-backend"

	jwtManager := auth.NewJWTManager(cfg)
	users := &fakeUsers{users: map[int]*models.User{
		1: {ID: 1, Username: "admin", Role: "admin"},
		2: {ID: 2, Username: "ravi", Role: "pharmacist"},
	}}
	return NewAuthMiddleware(jwtManager, users), jwtManager, users
}

func TestAuthenticateInjectsContext(t *testing.T) {
	mw, jwtManager, users := newAuthFixture()

	token, err := jwtManager.GenerateToken(users.users[2])
	require.NoError(t, err)

	var gotID int
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserIDFromContext(r.Context())
		gotRole, _ = GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/medicines", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	mw.Authenticate(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, gotID)
	assert.Equal(t, "pharmacist", gotRole)
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	mw, _, _ := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/medicines", nil)
	w := httptest.NewRecorder()

	mw.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next should not run")
	})).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "message")
}

func TestAuthenticateRejectsBadScheme(t *testing.T) {
	mw, _, _ := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/medicines", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()

	mw.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next should not run")
	})).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateRejectsDeletedUser(t *testing.T) {
	mw, jwtManager, _ := newAuthFixture()

	token, err := jwtManager.GenerateToken(&models.User{ID: 99, Username: "ghost", Role: "admin"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/medicines", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	mw.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next should not run")
	})).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	mw, jwtManager, users := newAuthFixture()

	protected := mw.Authenticate(mw.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	adminToken, err := jwtManager.GenerateToken(users.users[1])
	require.NoError(t, err)
	pharmacistToken, err := jwtManager.GenerateToken(users.users[2])
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+pharmacistToken)
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
