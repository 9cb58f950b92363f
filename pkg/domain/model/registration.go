package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/drover-ci/drover/pkg/domain/types"
)

// Registration is a request to put a repository under deployment automation.
// Branch and UserID are only used to parameterize and name the Jenkins job;
// they are not kept after the request completes.
type Registration struct {
	RepoOwner string `json:"repo_owner"`
	RepoName  string `json:"repo_name"`
	Branch    string `json:"branch"`
	UserID    string `json:"user_id"`
}

// Validate checks that all required fields are present
func (r *Registration) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"repo_owner", r.RepoOwner},
		{"repo_name", r.RepoName},
		{"branch", r.Branch},
		{"user_id", r.UserID},
	}

	for _, f := range fields {
		if f.value == "" {
			return goerr.Wrap(types.ErrMissingField, "registration is incomplete", goerr.V("field", f.name))
		}
	}

	return nil
}

// FullName returns the "owner/name" repository identifier used as the
// secret store key.
func (r *Registration) FullName() string {
	return r.RepoOwner + "/" + r.RepoName
}

// RegistrationResult describes a completed registration
type RegistrationResult struct {
	WebhookID  int64  `json:"webhook_id"`
	WebhookURL string `json:"webhook_url"`
	JenkinsJob string `json:"jenkins_job"`
	Repository string `json:"repository"`
	Branch     string `json:"branch"`
}

// Webhook identifies a webhook created on the source-control host
type Webhook struct {
	ID  int64
	URL string
}
