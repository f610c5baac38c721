package middleware

import (
	"net/http"

	"github.com/inkwellcms/inkwell/internal/ctxkeys"
	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/respond"
	"github.com/inkwellcms/inkwell/internal/service"
)

// Session resolves the session cookie to a user and stores it in the request
// context. The cookie holds only the opaque session id; the user row (and its
// scope) is looked up fresh on every request. A stale cookie is cleared and
// the request continues unauthenticated.
func Session(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := authService.SessionCookie(r)
			if sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.BySession(sessionID)
			if err != nil {
				// Rotated elsewhere or never valid
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			// Never expose the hash beyond this point
			user.PasswordHash = ""

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScope guards a route: 401 without a valid session, 403 with a valid
// session whose scope set misses the required role. The two cases stay
// distinct in the response contract.
func RequireScope(scope string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			respond.Error(w, http.StatusUnauthorized, "You must be logged in to access this resource.")
			return
		}

		if !user.HasScope(scope) {
			respond.Error(w, http.StatusForbidden, "You do not have permission to access this resource.")
			return
		}

		next.ServeHTTP(w, r)
	}
}

// RequireUser guards a route behind any authenticated session.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return RequireScope(model.ScopeUser, next)
}
