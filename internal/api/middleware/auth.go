package middleware

import (
	"context"
	"net/http"

	"github.com/Agungajipradana/contact-management-api/internal/domain"
	"github.com/Agungajipradana/contact-management-api/internal/repository"
)

type contextKey string

const (
	userKey contextKey = "user"
)

// Authenticate resolves the Authorization header to a user and attaches
// it to the request context. The header value is the token itself; there
// is no scheme prefix. Resolution is best effort: a missing, unknown or
// stale token just leaves the request anonymous. Rejection is the
// business of RequireUser, not of this middleware.
func Authenticate(userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByToken(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser returns the identity resolved by Authenticate, or an
// unauthorized error when the request is anonymous.
func RequireUser(ctx context.Context) (*domain.User, error) {
	user, ok := ctx.Value(userKey).(*domain.User)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
