// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ArgyPorgy/eigentribe/internal/app"
)

// SubmitHandler handles submission requests.
type SubmitHandler struct {
	deps Dependencies
}

// NewSubmitHandler creates a new submit handler.
func NewSubmitHandler(deps Dependencies) *SubmitHandler {
	return &SubmitHandler{deps: deps}
}

// HandleSubmit handles POST /api/submit requests and answers CORS
// preflights. The gate order and every error body are part of the
// public contract.
func (h *SubmitHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	setCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		writeError(w, http.StatusUnauthorized, app.ErrNoAuthToken)
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := h.deps.Submit(r.Context(), token, payload); err != nil {
		writeError(w, submitStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// submitStatus maps pipeline errors to HTTP statuses. Unknown faults
// surface as 500 with the fault's message, never silently swallowed.
func submitStatus(err error) int {
	var rl *app.RateLimitError
	switch {
	case errors.Is(err, app.ErrNoAuthToken), errors.Is(err, app.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.As(err, &rl):
		return http.StatusTooManyRequests
	case errors.Is(err, app.ErrAllFieldsRequired),
		errors.Is(err, app.ErrInvalidWallet),
		errors.Is(err, app.ErrLinkScheme):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
