package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"

	"github.com/drover-ci/drover/pkg/domain/interfaces"
	"github.com/drover-ci/drover/pkg/domain/model"
)

// HealthHandler reports service status and the registered repositories.
// The list is served without authentication; keep the service inside a
// trusted network.
type HealthHandler struct {
	store interfaces.SecretStore
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(store interfaces.SecretStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Handle handles health check requests
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.From(r.Context())

	repos, err := h.store.List(r.Context())
	if err != nil {
		logger.Error("Failed to list registered repositories", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	status := &model.HealthStatus{
		Status:          "ok",
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		RegisteredRepos: repos,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		logger.Error("Failed to encode health response", "error", err)
	}
}
