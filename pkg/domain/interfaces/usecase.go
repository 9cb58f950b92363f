package interfaces

import (
	"context"

	"github.com/drover-ci/drover/pkg/domain/model"
)

// RegistrarUseCase defines the repository registration flow
type RegistrarUseCase interface {
	// Register creates a push webhook on the repository, stores its signing
	// secret, and triggers an initial build
	Register(ctx context.Context, reg *model.Registration) (*model.RegistrationResult, error)
}

// WebhookUseCase defines push-delivery processing
type WebhookUseCase interface {
	// ProcessPush verifies the delivery signature against the stored secret
	// for the repository named in the body and triggers a build on success
	ProcessPush(ctx context.Context, body []byte, signature string) error
}
