package model

// HealthStatus represents the health check status. RegisteredRepos lists
// every repository currently holding a webhook secret; the endpoint is
// unauthenticated, so the service must not be exposed beyond a trusted
// network.
type HealthStatus struct {
	Status          string   `json:"status"`
	Timestamp       string   `json:"timestamp"`
	RegisteredRepos []string `json:"registered_repos"`
}
