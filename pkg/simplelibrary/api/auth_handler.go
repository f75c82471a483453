package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// AuthHandler lets clients verify the shared admin secret up front,
// before attempting gated operations.
type AuthHandler struct {
	secret string
}

func NewAuthHandler(secret string) *AuthHandler {
	return &AuthHandler{secret: secret}
}

// Routes returns the router for auth endpoints
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/verify", h.Verify)
	return r
}

// VerifyRequest carries the candidate secret
type VerifyRequest struct {
	Secret string `json:"secret"`
}

// Verify checks the supplied secret against the configured one
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Secret == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "Secret code is required"})
		return
	}

	if h.secret == "" || subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.secret)) != 1 {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "Invalid secret code"})
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true, "message": "Authenticated"})
}
