package interfaces

import (
	"context"

	"github.com/drover-ci/drover/pkg/domain/model"
)

// BuildTrigger defines operations against the build system
type BuildTrigger interface {
	// JobExists reports whether a job with the given name is defined
	JobExists(ctx context.Context, job string) (bool, error)

	// TriggerBuild starts a parameterized run of the named job. It only
	// confirms the build system accepted the trigger, never that a build
	// finished.
	TriggerBuild(ctx context.Context, job string, params model.BuildParams) error
}
