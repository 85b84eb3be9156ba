// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
)

// AdminHandler handles admin status checks.
type AdminHandler struct {
	deps Dependencies
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps Dependencies) *AdminHandler {
	return &AdminHandler{deps: deps}
}

// HandleCheck handles GET /api/admin/check?email=... requests.
func (h *AdminHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, errors.New("Missing email parameter"))
		return
	}

	writeJSON(w, http.StatusOK, adminCheckResponse{IsAdmin: h.deps.IsAdmin(email)})
}
