package middleware

import (
	"net"
	"net/http"
	"strings"

	"webapp-template/pkg/response"
)

// AllowedHostsMiddleware rejects requests whose Host header does not match
// one of the patterns. A pattern is "*", an exact host, or a leading-dot
// suffix that also matches the bare domain.
func AllowedHostsMiddleware(allowedHosts []string) func(http.Handler) http.Handler {
	patterns := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			patterns = append(patterns, h)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !HostAllowed(requestHost(r), patterns) {
				response.BadRequest(w, "Invalid host header")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HostAllowed reports whether host matches any of the patterns.
func HostAllowed(host string, patterns []string) bool {
	if host == "" {
		return false
	}
	for _, p := range patterns {
		switch {
		case p == "*":
			return true
		case strings.HasPrefix(p, "."):
			if host == p[1:] || strings.HasSuffix(host, p) {
				return true
			}
		case host == p:
			return true
		}
	}
	return false
}

func requestHost(r *http.Request) string {
	host := strings.ToLower(strings.TrimSpace(r.Host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.Trim(host, "[]"), ".")
	return host
}
