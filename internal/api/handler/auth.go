package handler

import (
	"encoding/json"
	"net/http"

	"github.com/petdohod/workshop-api/internal/api/middleware"
	"github.com/petdohod/workshop-api/internal/api/response"
)

// AuthHandler verifies the admin secret for the dashboard login form.
type AuthHandler struct {
	auth *middleware.AdminAuth
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *middleware.AdminAuth) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login checks the presented password. The dashboard stores the secret on
// success and sends it as a Bearer credential afterwards; nothing is issued
// server-side.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if !h.auth.Verify(input.Password) {
		response.Unauthorized(w, "invalid credentials")
		return
	}

	response.OK(w, map[string]bool{"authenticated": true})
}
