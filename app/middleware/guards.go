package middleware

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// RequireAuthenticated redirects anonymous requests to loginPath.
func RequireAuthenticated(loginPath string) Guard {
	return func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request, id Identity) {
			if !id.Authenticated() {
				response.Redirect(w, r, loginPath)
				return
			}
			next(w, r, id)
		}
	}
}

// RequireAdmin answers 403 with a plain denial unless the user is an admin.
// It never redirects.
func RequireAdmin(next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, id Identity) {
		if !id.IsAdmin() {
			logger.WithCtx(r.Context()).Warn().
				Uint("user_id", id.UserID()).
				Str("path", r.URL.Path).
				Msg("admin access denied")
			response.Forbidden(w)
			return
		}
		next(w, r, id)
	}
}
