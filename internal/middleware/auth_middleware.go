package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"webapp-template/internal/service"
	"webapp-template/pkg/response"
)

type contextKey string

const (
	AdminUserKey contextKey = "adminUser"

	// AdminCookieName holds the admin session token.
	AdminCookieName = "admin_session"
)

// Authenticator validates an admin token and returns the username.
type Authenticator interface {
	Enabled() bool
	Authenticate(token string) (string, error)
}

// AdminAuthMiddleware accepts a Bearer token or the admin session cookie.
func AdminAuthMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.Enabled() {
				response.Forbidden(w, "Admin is not configured")
				return
			}

			token, problem := tokenFromRequest(r)
			if problem != "" {
				response.Unauthorized(w, problem)
				return
			}

			username, err := auth.Authenticate(token)
			if err != nil {
				if errors.Is(err, service.ErrAdminDisabled) {
					response.Forbidden(w, "Admin is not configured")
					return
				}
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("admin_user", username)
			})

			ctx := context.WithValue(r.Context(), AdminUserKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFromRequest returns the token, or a client facing reason when none
// is usable.
func tokenFromRequest(r *http.Request) (string, string) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", "Invalid authorization header format"
		}
		return parts[1], ""
	}

	if cookie, err := r.Cookie(AdminCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, ""
	}

	return "", "Authentication required"
}

func GetAdminUser(r *http.Request) string {
	username, ok := r.Context().Value(AdminUserKey).(string)
	if !ok {
		return ""
	}
	return username
}
