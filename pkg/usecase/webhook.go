package usecase

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/drover-ci/drover/pkg/domain/interfaces"
	"github.com/drover-ci/drover/pkg/domain/model"
	"github.com/drover-ci/drover/pkg/domain/types"
)

type webhookUseCase struct {
	store   interfaces.SecretStore
	jenkins interfaces.BuildTrigger
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(store interfaces.SecretStore, buildTrigger interfaces.BuildTrigger) interfaces.WebhookUseCase {
	return &webhookUseCase{
		store:   store,
		jenkins: buildTrigger,
	}
}

// ProcessPush verifies a push delivery and triggers the corresponding build.
// The signature is recomputed over the exact body bytes as received; no
// verification is attempted for repositories without a stored secret.
func (uc *webhookUseCase) ProcessPush(ctx context.Context, body []byte, signature string) error {
	logger := ctxlog.From(ctx)

	event, err := parsePush(body)
	if err != nil {
		return err
	}

	secret, err := uc.store.Get(ctx, event.FullName)
	if err != nil {
		return err
	}

	if !model.ValidSignature(secret, body, signature) {
		return goerr.Wrap(types.ErrInvalidSignature, "signature mismatch", goerr.V("repo", event.FullName))
	}

	// Deliveries carry no registration identity, so the owner login stands
	// in for the user id (one deploy job per owner).
	job := model.JobNameFor(event.Owner)

	params := model.BuildParams{
		RepoOwner: event.Owner,
		RepoName:  event.Repo,
		Branch:    event.Branch,
		UserID:    event.Owner,
		CommitSHA: event.CommitSHA,
	}
	if err := uc.jenkins.TriggerBuild(ctx, job, params); err != nil {
		return goerr.Wrap(err, "failed to trigger build",
			goerr.V("repo", event.FullName),
			goerr.V("job", job),
		)
	}

	logger.Info("Triggered build for push",
		"repo", event.FullName,
		"branch", event.Branch,
		"commit", event.CommitSHA,
		"job", job,
	)

	return nil
}

// parsePush extracts the fields that drive a build trigger from a push
// delivery body
func parsePush(body []byte) (*model.PushEvent, error) {
	payload, err := github.ParseWebHook("push", body)
	if err != nil {
		return nil, goerr.Wrap(types.ErrMalformedPayload, err.Error())
	}

	push, ok := payload.(*github.PushEvent)
	if !ok {
		return nil, goerr.Wrap(types.ErrMalformedPayload, "not a push event")
	}

	repo := push.GetRepo()
	if repo.GetFullName() == "" {
		return nil, goerr.Wrap(types.ErrMalformedPayload, "missing repository full name")
	}

	owner := repo.GetOwner().GetLogin()
	if owner == "" {
		owner = repo.GetOwner().GetName()
	}

	commit := push.GetAfter()
	if commit == "" {
		commit = push.GetHeadCommit().GetID()
	}

	return &model.PushEvent{
		Owner:     owner,
		Repo:      repo.GetName(),
		FullName:  repo.GetFullName(),
		Branch:    model.BranchFromRef(push.GetRef()),
		CommitSHA: commit,
	}, nil
}
