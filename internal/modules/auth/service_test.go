package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/modules/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthEnv(t *testing.T) (Service, user.Repository, *user.User) {
	t.Helper()
	repo := user.NewMemoryRepository()
	u, err := user.NewService(repo).Register(context.Background(), user.RegisterRequest{
		Username: "jdoe", Password: "s3cret", Email: "jdoe@example.com",
	})
	require.NoError(t, err)
	return NewService(repo, []byte("test-key")), repo, u
}

func TestLoginIssuesTokenForValidCredentials(t *testing.T) {
	svc, _, u := newAuthEnv(t)

	token, got, err := svc.Login(context.Background(), "jdoe", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, u.ID, got.ID)
}

func TestLoginRejectsWrongPasswordAndUnknownUser(t *testing.T) {
	svc, _, _ := newAuthEnv(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "jdoe", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMiddlewarePutsUserInContext(t *testing.T) {
	svc, _, u := newAuthEnv(t)

	token, _, err := svc.Login(context.Background(), "jdoe", "s3cret")
	require.NoError(t, err)

	var gotID uuid.UUID
	var gotOK bool
	handler := Middleware([]byte("test-key"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, gotOK)
	assert.Equal(t, u.ID, gotID)
}

func TestMiddlewareIgnoresBadToken(t *testing.T) {
	var gotOK bool
	handler := Middleware([]byte("test-key"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, gotOK)
	assert.Equal(t, http.StatusOK, rec.Code, "anonymous requests pass through")
}

func TestCurrentUserRequiresContext(t *testing.T) {
	svc, _, u := newAuthEnv(t)

	_, ok := svc.CurrentUser(context.Background())
	assert.False(t, ok)

	ctx := context.WithValue(context.Background(), contextUserID, u.ID)
	got, ok := svc.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, "jdoe", got.Username)
}
