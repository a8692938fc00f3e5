package server

import (
	"net"
	"net/http"
	"strings"

	identitydomain "user-dashboard/backend/internal/identity/domain"
	"user-dashboard/backend/internal/security"
	"user-dashboard/backend/internal/useragentfp"
)

const bearerPrefix = "bearer "

// RequestContextMiddleware builds the per-request identity bundle: source
// address, device fingerprint, and the caller resolved from the Bearer token.
// A missing, malformed, or expired token yields an anonymous context; no
// request is rejected here.
func RequestContextMiddleware(tokens *security.TokenProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var caller *identitydomain.Identity
			if token := extractBearer(r.Header.Get("Authorization")); token != "" {
				if claims := tokens.Verify(token); claims != nil {
					caller = &identitydomain.Identity{ID: claims.Subject, IsAdmin: claims.IsAdmin}
				}
			}
			rc := identitydomain.NewRequestContext(
				caller,
				sourceAddress(r),
				useragentfp.Fingerprint(r.UserAgent()),
			)
			next.ServeHTTP(w, r.WithContext(withRequestContext(r.Context(), rc)))
		})
	}
}

// sourceAddress returns the first X-Forwarded-For hop, the RemoteAddr host,
// or "Unknown", in that order of preference.
func sourceAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "Unknown"
}

// extractBearer returns the Bearer token from an Authorization header value,
// or "" if missing or malformed.
func extractBearer(header string) string {
	v := strings.TrimSpace(header)
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
