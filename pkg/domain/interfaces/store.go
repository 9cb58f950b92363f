package interfaces

import "context"

// SecretStore maps repository full names ("owner/name") to webhook signing
// secrets. Implementations must be safe for concurrent use: registration and
// webhook delivery can race on the same key.
type SecretStore interface {
	// Put stores the secret for a repository, overwriting any prior entry
	Put(ctx context.Context, repo, secret string) error

	// Get returns the stored secret, or types.ErrRepoNotRegistered
	Get(ctx context.Context, repo string) (string, error)

	// Delete removes the entry for a repository, if any
	Delete(ctx context.Context, repo string) error

	// List returns all registered repository full names, sorted
	List(ctx context.Context) ([]string, error)
}
