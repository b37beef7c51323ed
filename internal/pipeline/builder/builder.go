package builder

import (
	"context"

	"github.com/elskow/seabuild/internal/pipeline/types"
)

// Builder produces the executable for a single platform.
type Builder interface {
	Build(ctx context.Context, build *types.Build) (*types.BuildResult, error)
}
