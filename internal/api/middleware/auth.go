package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/petdohod/workshop-api/internal/api/response"
)

// AdminAuth guards the admin endpoints with a single shared secret. There
// are no sessions or tokens; the dashboard presents the secret as a Bearer
// credential on every request.
type AdminAuth struct {
	password string
}

// NewAdminAuth creates a new admin auth middleware
func NewAdminAuth(password string) *AdminAuth {
	return &AdminAuth{password: password}
}

// Authenticate validates the shared admin secret. A server without a
// configured secret refuses admin access outright instead of letting
// everything through.
func (m *AdminAuth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.password == "" {
			log.Error().Msg("Admin password is not configured")
			response.InternalError(w, "admin access not configured")
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(w, "invalid authorization header format")
			return
		}

		if !m.Verify(parts[1]) {
			response.Unauthorized(w, "invalid credentials")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Verify compares a presented secret against the configured one in constant
// time.
func (m *AdminAuth) Verify(password string) bool {
	if m.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) == 1
}
