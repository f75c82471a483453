package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/render"
)

// AdminSecretHeader carries the shared admin secret on gated requests.
const AdminSecretHeader = "X-Admin-Secret"

// AdminCheck is an injected capability predicate over request
// credentials. Handlers never inspect credentials themselves; the gate
// runs before any library operation.
type AdminCheck func(r *http.Request) bool

// SharedSecretCheck returns an AdminCheck comparing the AdminSecretHeader
// value against a single shared secret. An empty configured secret admits
// nothing.
func SharedSecretCheck(secret string) AdminCheck {
	return func(r *http.Request) bool {
		if secret == "" {
			return false
		}
		supplied := r.Header.Get(AdminSecretHeader)
		return subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) == 1
	}
}

// RequireAdmin rejects requests failing the check with 401 before the
// wrapped handler runs.
func RequireAdmin(check AdminCheck) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !check(r) {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
