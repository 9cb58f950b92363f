package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/drover-ci/drover/pkg/domain/interfaces"
	"github.com/drover-ci/drover/pkg/domain/model"
)

// secretLength is the number of random bytes in a webhook signing secret
// (hex-encoded to twice this many characters).
const secretLength = 32

type registrarUseCase struct {
	store     interfaces.SecretStore
	github    interfaces.GitHubClient
	jenkins   interfaces.BuildTrigger
	publicURL string
}

// NewRegistrar creates a new instance of RegistrarUseCase. publicURL is the
// base URL at which this service's webhook receiver is reachable from GitHub.
func NewRegistrar(
	store interfaces.SecretStore,
	githubClient interfaces.GitHubClient,
	buildTrigger interfaces.BuildTrigger,
	publicURL string,
) interfaces.RegistrarUseCase {
	return &registrarUseCase{
		store:     store,
		github:    githubClient,
		jenkins:   buildTrigger,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Register creates a push webhook on the repository, stores its signing
// secret, and triggers an initial build. If the initial trigger fails the
// webhook and secret are deliberately left in place: the repository stays
// verifiable and the next push recovers the state.
func (uc *registrarUseCase) Register(ctx context.Context, reg *model.Registration) (*model.RegistrationResult, error) {
	logger := ctxlog.From(ctx)

	if err := reg.Validate(); err != nil {
		return nil, err
	}

	secret, err := generateSecret()
	if err != nil {
		return nil, err
	}

	hookURL := uc.publicURL + "/webhook/github"
	hook, err := uc.github.CreatePushWebhook(ctx, reg.RepoOwner, reg.RepoName, hookURL, secret)
	if err != nil {
		return nil, err
	}

	if err := uc.store.Put(ctx, reg.FullName(), secret); err != nil {
		return nil, goerr.Wrap(err, "failed to store webhook secret", goerr.V("repo", reg.FullName()))
	}

	logger.Info("Registered repository",
		"repo", reg.FullName(),
		"branch", reg.Branch,
		"webhook_id", hook.ID,
	)

	job := model.JobNameFor(reg.UserID)

	// Jobs are provisioned manually by an operator; a missing job is only
	// worth a warning here and surfaces as a trigger failure later.
	exists, err := uc.jenkins.JobExists(ctx, job)
	switch {
	case err != nil:
		logger.Warn("Could not check Jenkins job", "job", job, "error", err)
	case !exists:
		logger.Warn("Jenkins job does not exist, builds will fail until it is created", "job", job)
	}

	params := model.BuildParams{
		RepoOwner: reg.RepoOwner,
		RepoName:  reg.RepoName,
		Branch:    reg.Branch,
		UserID:    reg.UserID,
	}
	if err := uc.jenkins.TriggerBuild(ctx, job, params); err != nil {
		return nil, goerr.Wrap(err, "failed to trigger initial build",
			goerr.V("repo", reg.FullName()),
			goerr.V("job", job),
		)
	}

	return &model.RegistrationResult{
		WebhookID:  hook.ID,
		WebhookURL: hook.URL,
		JenkinsJob: job,
		Repository: reg.FullName(),
		Branch:     reg.Branch,
	}, nil
}

// generateSecret returns a cryptographically random secret encoded as
// lowercase hex.
func generateSecret() (string, error) {
	buf := make([]byte, secretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", goerr.Wrap(err, "failed to generate webhook secret")
	}
	return hex.EncodeToString(buf), nil
}
