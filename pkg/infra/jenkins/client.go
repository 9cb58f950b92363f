package jenkins

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/drover-ci/drover/pkg/domain/interfaces"
	"github.com/drover-ci/drover/pkg/domain/model"
	"github.com/drover-ci/drover/pkg/domain/types"
)

type client struct {
	baseURL    string
	user       string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a Jenkins client using basic auth with a username and
// API token. All requests run under the given timeout.
func NewClient(baseURL, user, apiToken string, timeout time.Duration) interfaces.BuildTrigger {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		user:       user,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// TriggerBuild issues a buildWithParameters request for the named job.
// Jenkins answers 201 when the build is queued; any non-2xx status is a
// failure. Build completion is never awaited.
func (c *client) TriggerBuild(ctx context.Context, job string, params model.BuildParams) error {
	endpoint := c.jobURL(job, "buildWithParameters") + "?" + params.Values().Encode()

	resp, err := c.do(ctx, http.MethodPost, endpoint)
	if err != nil {
		return goerr.Wrap(err, "failed to reach Jenkins", goerr.V("job", job))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		remote := &types.RemoteError{
			Service: "jenkins",
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
		}
		return goerr.Wrap(remote, "build trigger rejected", goerr.V("job", job))
	}

	return nil
}

// JobExists checks whether a job is defined on the Jenkins instance
func (c *client) JobExists(ctx context.Context, job string) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, c.jobURL(job, "api/json"))
	if err != nil {
		return false, goerr.Wrap(err, "failed to reach Jenkins", goerr.V("job", job))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		remote := &types.RemoteError{
			Service: "jenkins",
			Status:  resp.StatusCode,
			Message: resp.Status,
		}
		return false, goerr.Wrap(remote, "job lookup failed", goerr.V("job", job))
	}
}

func (c *client) do(ctx context.Context, method, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("endpoint", endpoint))
	}
	req.SetBasicAuth(c.user, c.apiToken)

	return c.httpClient.Do(req)
}

func (c *client) jobURL(job, action string) string {
	return fmt.Sprintf("%s/job/%s/%s", c.baseURL, url.PathEscape(job), action)
}
