package app

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/elskow/seabuild/internal/config"
	"github.com/elskow/seabuild/internal/logging"
	"github.com/elskow/seabuild/internal/pipeline"
	pipelineconfig "github.com/elskow/seabuild/internal/pipeline/config"
)

// Module combines all application modules
func Module(src config.Source) fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(func() (*config.AppConfig, error) {
			return config.LoadConfig(src)
		}),
		fx.Provide(pipelineConfig),

		// Logger
		fx.Provide(func(cfg *config.AppConfig) (*zap.Logger, error) {
			return newLogger(cfg, src)
		}),

		// Build pipeline
		pipeline.Module(),
	)
}

func pipelineConfig(cfg *config.AppConfig) *pipelineconfig.PipelineConfig {
	return &cfg.Pipeline
}

func newLogger(cfg *config.AppConfig, src config.Source) (*zap.Logger, error) {
	level := cfg.Log.Level
	if src.LogLevel != "" {
		level = src.LogLevel
	}
	return logging.NewLogger(cfg.Env, level)
}
