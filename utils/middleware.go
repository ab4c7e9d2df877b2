package utils

import (
	"context"
	"net/http"
	"strings"

	"footy_server/models"

	"github.com/gorilla/mux"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// UserResolver turns a verified user id into the full account record.
type UserResolver func(ctx context.Context, userID string) (*models.User, error)

// RequireAuth returns mux middleware that verifies the bearer token,
// resolves the caller's account and stashes it in the request context.
// Requests without a valid token and account are rejected with 401 before
// any handler runs.
func RequireAuth(resolve UserResolver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "Missing bearer token")
				return
			}

			userID, err := ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			user, err := resolve(r.Context(), userID)
			if err != nil || user == nil {
				WriteError(w, http.StatusUnauthorized, "User not found")
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated caller stored by RequireAuth.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(currentUserKey).(*models.User)
	return user
}
