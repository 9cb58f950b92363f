package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/drover-ci/drover/pkg/domain/interfaces"
	"github.com/drover-ci/drover/pkg/domain/types"
)

// store is an in-memory SecretStore. Entries live for the process lifetime
// only; a restart invalidates the verifiability of every webhook created
// before it.
type store struct {
	mu      sync.RWMutex
	secrets map[string]string
}

// NewSecretStore creates an empty in-memory secret store
func NewSecretStore() interfaces.SecretStore {
	return &store{
		secrets: make(map[string]string),
	}
}

func (s *store) Put(_ context.Context, repo, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.secrets[repo] = secret
	return nil
}

func (s *store) Get(_ context.Context, repo string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	secret, ok := s.secrets[repo]
	if !ok {
		return "", goerr.Wrap(types.ErrRepoNotRegistered, "no secret stored", goerr.V("repo", repo))
	}
	return secret, nil
}

func (s *store) Delete(_ context.Context, repo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.secrets, repo)
	return nil
}

func (s *store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repos := make([]string, 0, len(s.secrets))
	for repo := range s.secrets {
		repos = append(repos, repo)
	}
	sort.Strings(repos)
	return repos, nil
}
