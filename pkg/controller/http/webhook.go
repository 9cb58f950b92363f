package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/m-mizutani/ctxlog"

	"github.com/drover-ci/drover/pkg/domain/interfaces"
	"github.com/drover-ci/drover/pkg/domain/types"
)

// WebhookHandler handles GitHub webhook deliveries
type WebhookHandler struct {
	webhookUC interfaces.WebhookUseCase
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookUC interfaces.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{webhookUC: webhookUC}
}

// Handle processes webhook requests. Responses are plain text, the format
// GitHub shows in its delivery log.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	// Read the raw payload; the signature covers these exact bytes
	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Non-push events are accepted and discarded without verification
	eventType := r.Header.Get("X-GitHub-Event")
	if eventType != "push" {
		logger.Info("Ignoring webhook event", "event_type", eventType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ignored"))
		return
	}

	signature := r.Header.Get("X-Hub-Signature-256")
	if err := h.webhookUC.ProcessPush(ctx, body, signature); err != nil {
		status, msg := pushStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to process push event", "error", err)
		} else {
			logger.Warn("Rejected push event", "error", err, "status", status)
		}
		http.Error(w, msg, status)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// pushStatus maps a push-processing failure to an HTTP status and a
// response body
func pushStatus(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrRepoNotRegistered):
		return http.StatusNotFound, "repository is not registered"
	case errors.Is(err, types.ErrInvalidSignature):
		return http.StatusUnauthorized, "invalid signature"
	case errors.Is(err, types.ErrMalformedPayload):
		return http.StatusBadRequest, "malformed payload"
	default:
		return http.StatusInternalServerError, "failed to process push event"
	}
}
