package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicly/booking-api/pkg/auth"
)

type fakeTokenStore struct {
	revoked map[string]bool
}

func (f *fakeTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if f.revoked == nil {
		f.revoked = make(map[string]bool)
	}
	f.revoked[tokenID] = true
	return nil
}

func (f *fakeTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return f.revoked[tokenID], nil
}

func setupAuthRouter(t *testing.T, store *fakeTokenStore) (*gin.Engine, auth.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewJWTService("test-secret-at-least-32-bytes-long", "clinicly", "clinicly-web", 1)
	mw := NewAuthMiddleware(tokens, store)

	r := gin.New()
	protected := r.Group("", mw.Authenticate())
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":   c.GetInt64(ContextPrincipalID),
			"role": c.GetString(ContextPrincipalRole),
		})
	})
	protected.GET("/doctor-only", mw.RequireRole(auth.RoleDoctor), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens
}

func get(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	r, tokens := setupAuthRouter(t, &fakeTokenStore{})

	token, err := tokens.Generate(42, "Alice", "alice@clinic.test", auth.RolePatient)
	require.NoError(t, err)

	w := get(r, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":42`)
	assert.Contains(t, w.Body.String(), `"role":"Patient"`)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r, _ := setupAuthRouter(t, &fakeTokenStore{})

	w := get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	r, tokens := setupAuthRouter(t, &fakeTokenStore{})

	token, err := tokens.Generate(42, "Alice", "alice@clinic.test", auth.RolePatient)
	require.NoError(t, err)

	w := get(r, "/me", "Basic "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	r, _ := setupAuthRouter(t, &fakeTokenStore{})

	w := get(r, "/me", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateRevokedToken(t *testing.T) {
	store := &fakeTokenStore{}
	r, tokens := setupAuthRouter(t, store)

	token, err := tokens.Generate(42, "Alice", "alice@clinic.test", auth.RolePatient)
	require.NoError(t, err)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	require.NoError(t, store.Revoke(context.Background(), claims.ID, time.Hour))

	w := get(r, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r, tokens := setupAuthRouter(t, &fakeTokenStore{})

	patientToken, err := tokens.Generate(1, "Alice", "alice@clinic.test", auth.RolePatient)
	require.NoError(t, err)
	doctorToken, err := tokens.Generate(2, "Dr. Patel", "patel@clinic.test", auth.RoleDoctor)
	require.NoError(t, err)

	w := get(r, "/doctor-only", "Bearer "+patientToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(r, "/doctor-only", "Bearer "+doctorToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
