// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ArgyPorgy/eigentribe/internal/adapters/repository"
	"github.com/ArgyPorgy/eigentribe/internal/app"
)

// UploadHandler handles admin leaderboard CSV uploads.
type UploadHandler struct {
	deps Dependencies
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(deps Dependencies) *UploadHandler {
	return &UploadHandler{deps: deps}
}

// uploadRequest mirrors the admin upload body.
type uploadRequest struct {
	CSVData string `json:"csvData"`
}

// HandleUpload handles POST /api/leaderboard/upload requests.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
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

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest)
		return
	}
	if req.CSVData == "" {
		writeError(w, http.StatusBadRequest, errors.New("Missing csvData"))
		return
	}

	rows, err := h.deps.UploadLeaderboard(r.Context(), token, req.CSVData)
	if err != nil {
		writeError(w, uploadStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Leaderboard updated: %d rows", rows)})
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, app.ErrNoAuthToken), errors.Is(err, app.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, app.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrBadCSV):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
