package interfaces

import (
	"context"

	"github.com/drover-ci/drover/pkg/domain/model"
)

// GitHubClient defines operations for interacting with the GitHub API
type GitHubClient interface {
	// CreatePushWebhook creates an active push-event webhook on the
	// repository, pointing at hookURL and signing deliveries with secret
	CreatePushWebhook(ctx context.Context, owner, repo, hookURL, secret string) (*model.Webhook, error)
}
