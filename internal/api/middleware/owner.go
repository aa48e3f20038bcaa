package middleware

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const UserIDParam = "user_id"

// RequireOwner rejects requests whose {user_id} path parameter is not the
// authenticated user. It must run after Auth.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		if !ok {
			http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}

		pathID, err := uuid.Parse(chi.URLParam(r, UserIDParam))
		if err != nil || pathID != userID {
			log.Printf("ERROR [middleware.RequireOwner] user %s denied access to %q", userID, chi.URLParam(r, UserIDParam))
			http.Error(w, "Access denied", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
