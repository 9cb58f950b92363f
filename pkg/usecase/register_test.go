package usecase_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/drover-ci/drover/pkg/domain/model"
	"github.com/drover-ci/drover/pkg/domain/types"
	"github.com/drover-ci/drover/pkg/infra/memory"
	"github.com/drover-ci/drover/pkg/usecase"
)

// fakeGitHub records webhook creation calls
type fakeGitHub struct {
	hook  *model.Webhook
	err   error
	calls int

	gotOwner   string
	gotRepo    string
	gotHookURL string
	gotSecret  string
}

func (f *fakeGitHub) CreatePushWebhook(_ context.Context, owner, repo, hookURL, secret string) (*model.Webhook, error) {
	f.calls++
	f.gotOwner = owner
	f.gotRepo = repo
	f.gotHookURL = hookURL
	f.gotSecret = secret

	if f.err != nil {
		return nil, f.err
	}
	if f.hook != nil {
		return f.hook, nil
	}
	return &model.Webhook{ID: 1, URL: hookURL}, nil
}

// fakeTrigger records build triggers and job existence checks
type fakeTrigger struct {
	exists     bool
	existsErr  error
	triggerErr error

	jobs   []string
	params []model.BuildParams
}

func (f *fakeTrigger) JobExists(_ context.Context, _ string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeTrigger) TriggerBuild(_ context.Context, job string, params model.BuildParams) error {
	f.jobs = append(f.jobs, job)
	f.params = append(f.params, params)
	return f.triggerErr
}

var hexSecret = regexp.MustCompile(`^[0-9a-f]{64}$`)

func validRegistration() *model.Registration {
	return &model.Registration{
		RepoOwner: "acme",
		RepoName:  "widget",
		Branch:    "main",
		UserID:    "u123",
	}
}

func TestRegistrar_Register(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSecretStore()
	gh := &fakeGitHub{hook: &model.Webhook{ID: 42, URL: "https://relay.example.com/webhook/github"}}
	trigger := &fakeTrigger{exists: true}

	uc := usecase.NewRegistrar(store, gh, trigger, "https://relay.example.com/")

	result, err := uc.Register(ctx, validRegistration())
	gt.NoError(t, err)

	gt.Value(t, result.WebhookID).Equal(42)
	gt.Value(t, result.WebhookURL).Equal("https://relay.example.com/webhook/github")
	gt.Value(t, result.JenkinsJob).Equal("deploy-u123")
	gt.Value(t, result.Repository).Equal("acme/widget")
	gt.Value(t, result.Branch).Equal("main")

	// The webhook was created against the receiver endpoint
	gt.Value(t, gh.gotOwner).Equal("acme")
	gt.Value(t, gh.gotRepo).Equal("widget")
	gt.Value(t, gh.gotHookURL).Equal("https://relay.example.com/webhook/github")

	// The secret handed to GitHub is the one in the store
	secret, err := store.Get(ctx, "acme/widget")
	gt.NoError(t, err)
	gt.Value(t, secret).Equal(gh.gotSecret)

	if !hexSecret.MatchString(secret) {
		t.Errorf("secret %q is not 64 lowercase hex characters", secret)
	}

	// The initial build carries no commit sha
	gt.Value(t, trigger.jobs).Equal([]string{"deploy-u123"})
	gt.Value(t, trigger.params[0]).Equal(model.BuildParams{
		RepoOwner: "acme",
		RepoName:  "widget",
		Branch:    "main",
		UserID:    "u123",
	})
}

func TestRegistrar_Register_MissingField(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*model.Registration)
	}{
		{"missing repo_owner", func(r *model.Registration) { r.RepoOwner = "" }},
		{"missing repo_name", func(r *model.Registration) { r.RepoName = "" }},
		{"missing branch", func(r *model.Registration) { r.Branch = "" }},
		{"missing user_id", func(r *model.Registration) { r.UserID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gh := &fakeGitHub{}
			uc := usecase.NewRegistrar(memory.NewSecretStore(), gh, &fakeTrigger{exists: true}, "https://relay.example.com")

			reg := validRegistration()
			tt.mut(reg)

			_, err := uc.Register(context.Background(), reg)
			gt.Error(t, err)

			if !errors.Is(err, types.ErrMissingField) {
				t.Errorf("Register() error = %v, want ErrMissingField", err)
			}
			gt.Value(t, gh.calls).Equal(0)
		})
	}
}

func TestRegistrar_Register_WebhookCreationFails(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSecretStore()
	remote := &types.RemoteError{Service: "github", Status: 404, Message: "Not Found"}
	gh := &fakeGitHub{err: remote}

	uc := usecase.NewRegistrar(store, gh, &fakeTrigger{exists: true}, "https://relay.example.com")

	_, err := uc.Register(ctx, validRegistration())
	gt.Error(t, err)

	var gotRemote *types.RemoteError
	if !errors.As(err, &gotRemote) {
		t.Fatalf("error %v does not carry a RemoteError", err)
	}
	gt.Value(t, gotRemote.Status).Equal(404)

	// No secret is stored when the remote webhook was never created
	_, err = store.Get(ctx, "acme/widget")
	if !errors.Is(err, types.ErrRepoNotRegistered) {
		t.Errorf("store should be untouched after webhook failure, got %v", err)
	}
}

func TestRegistrar_Register_MissingJobOnlyWarns(t *testing.T) {
	tests := []struct {
		name    string
		trigger *fakeTrigger
	}{
		{"job does not exist", &fakeTrigger{exists: false}},
		{"job check fails", &fakeTrigger{existsErr: errors.New("jenkins unreachable on lookup")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewRegistrar(memory.NewSecretStore(), &fakeGitHub{}, tt.trigger, "https://relay.example.com")

			_, err := uc.Register(context.Background(), validRegistration())
			gt.NoError(t, err)

			// The initial build is still attempted
			gt.Value(t, len(tt.trigger.jobs)).Equal(1)
		})
	}
}

func TestRegistrar_Register_InitialTriggerFails(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSecretStore()
	trigger := &fakeTrigger{exists: true, triggerErr: errors.New("build queue rejected")}

	uc := usecase.NewRegistrar(store, &fakeGitHub{}, trigger, "https://relay.example.com")

	_, err := uc.Register(ctx, validRegistration())
	gt.Error(t, err)

	// The webhook and secret stay in place: pushes still verify, and the
	// next one recovers the state.
	secret, err := store.Get(ctx, "acme/widget")
	gt.NoError(t, err)
	if !hexSecret.MatchString(secret) {
		t.Errorf("stored secret %q is not 64 lowercase hex characters", secret)
	}
}

func TestRegistrar_Register_OverwritesSecret(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSecretStore()
	gh := &fakeGitHub{}
	uc := usecase.NewRegistrar(store, gh, &fakeTrigger{exists: true}, "https://relay.example.com")

	_, err := uc.Register(ctx, validRegistration())
	gt.NoError(t, err)
	first, err := store.Get(ctx, "acme/widget")
	gt.NoError(t, err)

	_, err = uc.Register(ctx, validRegistration())
	gt.NoError(t, err)
	second, err := store.Get(ctx, "acme/widget")
	gt.NoError(t, err)

	if first == second {
		t.Error("re-registration must replace the stored secret")
	}
	gt.Value(t, second).Equal(gh.gotSecret)
}
