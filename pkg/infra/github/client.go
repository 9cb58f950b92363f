package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/drover-ci/drover/pkg/domain/interfaces"
	"github.com/drover-ci/drover/pkg/domain/model"
	"github.com/drover-ci/drover/pkg/domain/types"
)

type client struct {
	githubClient *github.Client
}

// NewClient creates a GitHub client authenticated with a personal access
// token. All requests run under the given timeout.
func NewClient(token string, timeout time.Duration) interfaces.GitHubClient {
	httpClient := &http.Client{Timeout: timeout}

	return &client{
		githubClient: github.NewClient(httpClient).WithAuthToken(token),
	}
}

// NewClientWithBaseURL creates a client pointed at a non-default API base
// URL, such as a GitHub Enterprise host or a test server.
func NewClientWithBaseURL(token, baseURL string, timeout time.Duration) (interfaces.GitHubClient, error) {
	c := NewClient(token, timeout).(*client)

	u, err := url.Parse(baseURL + "/")
	if err != nil {
		return nil, goerr.Wrap(err, "invalid GitHub base URL", goerr.V("base_url", baseURL))
	}
	c.githubClient.BaseURL = u

	return c, nil
}

// CreatePushWebhook creates an active push-event webhook on the repository
func (c *client) CreatePushWebhook(ctx context.Context, owner, repo, hookURL, secret string) (*model.Webhook, error) {
	hook := &github.Hook{
		Active: github.Ptr(true),
		Events: []string{"push"},
		Config: &github.HookConfig{
			URL:         github.Ptr(hookURL),
			ContentType: github.Ptr("json"),
			Secret:      github.Ptr(secret),
			InsecureSSL: github.Ptr("0"),
		},
	}

	created, _, err := c.githubClient.Repositories.CreateHook(ctx, owner, repo, hook)
	if err != nil {
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil {
			remote := &types.RemoteError{
				Service: "github",
				Status:  ghErr.Response.StatusCode,
				Message: ghErr.Message,
			}
			return nil, goerr.Wrap(remote, "failed to create webhook",
				goerr.V("owner", owner),
				goerr.V("repo", repo),
			)
		}
		return nil, goerr.Wrap(err, "failed to create webhook",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	result := &model.Webhook{
		ID:  created.GetID(),
		URL: created.GetConfig().GetURL(),
	}
	if result.URL == "" {
		result.URL = hookURL
	}

	return result, nil
}
