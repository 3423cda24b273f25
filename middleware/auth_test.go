package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"societyhub/middleware"
	"societyhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedEcho(t *testing.T, secret []byte) http.Handler {
	t.Helper()
	m := middleware.NewAuthMiddleware(nil, secret)
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		require.True(t, ok, "user_id must be set after auth")
		assert.Equal(t, int64(7), userID)
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRequireAuth(t *testing.T) {
	secret := []byte("mw-secret")
	handler := protectedEcho(t, secret)

	t.Run("missing header", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := utils.GenerateJWT(7, "a@example.com", "RESIDENT", []byte("other"), 1)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token passes and sets user id", func(t *testing.T) {
		token, err := utils.GenerateJWT(7, "a@example.com", "RESIDENT", secret, 1)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}
