package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/drover-ci/drover/pkg/domain/interfaces"
	"github.com/drover-ci/drover/pkg/domain/model"
	"github.com/drover-ci/drover/pkg/domain/types"
)

// RegisterHandler handles repository registration requests
type RegisterHandler struct {
	registrarUC interfaces.RegistrarUseCase
}

// NewRegisterHandler creates a new RegisterHandler
func NewRegisterHandler(registrarUC interfaces.RegistrarUseCase) *RegisterHandler {
	return &RegisterHandler{registrarUC: registrarUC}
}

type registerResponse struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message"`
	Data    *model.RegistrationResult `json:"data"`
}

// Handle processes registration requests
func (h *RegisterHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var reg model.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		logger.Warn("Failed to decode registration request", "error", err)
		writeError(w, goerr.Wrap(err, "invalid JSON body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	result, err := h.registrarUC.Register(ctx, &reg)
	if err != nil {
		logger.Error("Registration failed",
			"error", err,
			"repo", reg.FullName(),
			"user_id", reg.UserID,
		)
		writeError(w, err, registrationStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(&registerResponse{
		Success: true,
		Message: "repository registered for deployment",
		Data:    result,
	}); err != nil {
		logger.Error("Failed to encode registration response", "error", err)
	}
}

// registrationStatus maps a registration failure to an HTTP status. Remote
// API rejections keep their original status code.
func registrationStatus(err error) int {
	if errors.Is(err, types.ErrMissingField) {
		return http.StatusBadRequest
	}

	var remote *types.RemoteError
	if errors.As(err, &remote) && remote.Status >= http.StatusBadRequest && remote.Status < 600 {
		return remote.Status
	}

	return http.StatusInternalServerError
}
