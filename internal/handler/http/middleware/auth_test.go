package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsuite/opsuite-backend-go/internal/domain/user"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/jwt"
)

func protectedRouter(jwtService jwt.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(AuthRequired(jwtService))
		r.Get("/protected", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func doRequest(t *testing.T, router *chi.Mux, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired_RevokedTokenRejected(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "15m", "720h")
	router := protectedRouter(jwtService)

	token, _, err := jwtService.GenerateAccessToken("user-1", "user@example.com", nil, user.RoleLimitedEmployee, nil)
	require.NoError(t, err)

	rec := doRequest(t, router, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	jwtService.RevokeToken(token)

	rec = doRequest(t, router, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_RefreshTokenRejected(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "15m", "720h")
	router := protectedRouter(jwtService)

	refresh, _, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	rec := doRequest(t, router, refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_MissingToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "15m", "720h")
	router := protectedRouter(jwtService)

	rec := doRequest(t, router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
