package pipeline

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/elskow/seabuild/internal/pipeline/builder"
	"github.com/elskow/seabuild/internal/pipeline/config"
	"github.com/elskow/seabuild/internal/pipeline/runtime"
	"github.com/elskow/seabuild/internal/pipeline/toolchain"
	"github.com/elskow/seabuild/internal/pipeline/validator"
)

func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			func(logger *zap.Logger) toolchain.Runner {
				return toolchain.NewExecRunner(logger)
			},
			func(config *config.PipelineConfig, logger *zap.Logger) runtime.VersionResolver {
				return runtime.NewIndexResolver(&config.NodeJS, nil, logger)
			},
			func(config *config.PipelineConfig, resolver runtime.VersionResolver, logger *zap.Logger) (runtime.Store, error) {
				return runtime.NewCache(config, resolver, nil, logger)
			},
			func(config *config.PipelineConfig, runner toolchain.Runner, logger *zap.Logger) validator.Validator {
				return validator.NewSEAValidator(&config.Verify, runner, logger)
			},
			func(config *config.PipelineConfig, runner toolchain.Runner, logger *zap.Logger) builder.Signer {
				return builder.NewToolSigner(config, runner, logger)
			},
			builder.NewBuilderFactory,
			NewPipeline,
			NewCleanupManager,
		),
	)
}
