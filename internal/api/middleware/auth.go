package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/dom/taskchat-backend/internal/domain"
	"github.com/dom/taskchat-backend/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserKey contextKey = "user"
)

// Auth resolves the bearer token to a user and stores it in the request
// context. Any failure is a 401; nothing downstream runs.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				log.Printf("ERROR [middleware.Auth] missing or malformed authorization header")
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
				return
			}

			user, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] authentication failed: %v", err)
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
				return
			}

			ctx := WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok && user != nil
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}
