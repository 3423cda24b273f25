package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"societyhub/service"

	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates JWT token and extracts user_id
type AuthMiddleware struct {
	userService *service.UserService
	jwtSecret   []byte
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(userService *service.UserService, jwtSecret []byte) *AuthMiddleware {
	return &AuthMiddleware{
		userService: userService,
		jwtSecret:   jwtSecret,
	}
}

// RequireAuth validates the bearer token and sets user_id in the request context
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondAuthError(w, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondAuthError(w, "Invalid authorization format. Expected: Bearer <token>")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			respondAuthError(w, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respondAuthError(w, "Invalid token claims")
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			respondAuthError(w, "Invalid token: user_id not found")
			return
		}
		userID := int64(userIDFloat)

		if m.userService != nil {
			exists, err := m.userService.VerifyUserExists(userID)
			if err != nil || !exists {
				respondAuthError(w, "User not found")
				return
			}
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFromContext returns the authenticated user id set by RequireAuth.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func respondAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	body := fmt.Sprintf(`{"error":"Unauthorized","message":"%s","code":%d}`, message, http.StatusUnauthorized)
	w.Write([]byte(body))
}
