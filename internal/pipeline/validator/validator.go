package validator

import (
	"context"

	"github.com/elskow/seabuild/internal/pipeline/types"
)

type Validator interface {
	// ValidateOptions rejects a build session before any platform runs.
	ValidateOptions(opts *types.BuildOptions) error
	// ValidateExecutable checks a freshly injected executable.
	ValidateExecutable(ctx context.Context, p types.Platform, path string) error
}
