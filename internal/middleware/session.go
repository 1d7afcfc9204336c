package middleware

import (
	"context"
	"net/http"

	"github.com/sweetspot260/sweetlife/internal/service"
	"github.com/sweetspot260/sweetlife/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// AdminContextKey is the key for the authenticated admin username
	AdminContextKey ContextKey = "admin"
)

// SessionCookieName is the cookie carrying the signed admin session token
const SessionCookieName = "sweetlife_session"

// AdminSession gates handlers behind an authenticated admin session. An
// anonymous or expired session is redirected to the login form rather than
// given a structured error, matching the HTML admin surface.
func AdminSession(adminService service.AdminService, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}

			username, err := adminService.ParseSession(cookie.Value)
			if err != nil {
				logger.WithError(err).Debug("Rejected admin session")
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), AdminContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext returns the authenticated admin username, if any
func AdminFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(AdminContextKey).(string)
	return username, ok
}
