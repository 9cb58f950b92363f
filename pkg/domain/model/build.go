package model

import "net/url"

// BuildParams are the query parameters passed to a parameterized Jenkins
// build. CommitSHA is empty for the initial build issued at registration.
type BuildParams struct {
	RepoOwner string
	RepoName  string
	Branch    string
	UserID    string
	CommitSHA string
}

// Values encodes the parameters for a buildWithParameters request
func (p BuildParams) Values() url.Values {
	v := url.Values{}
	v.Set("REPO_OWNER", p.RepoOwner)
	v.Set("REPO_NAME", p.RepoName)
	v.Set("BRANCH", p.Branch)
	v.Set("USER_ID", p.UserID)
	if p.CommitSHA != "" {
		v.Set("COMMIT_SHA", p.CommitSHA)
	}
	return v
}

// JobNameFor derives the deterministic Jenkins job name for a user.
// Jobs are provisioned manually by an operator under this naming scheme.
func JobNameFor(userID string) string {
	return "deploy-" + userID
}
