package builder

import (
	"go.uber.org/zap"

	"github.com/elskow/seabuild/internal/pipeline/config"
	"github.com/elskow/seabuild/internal/pipeline/runtime"
	"github.com/elskow/seabuild/internal/pipeline/toolchain"
	"github.com/elskow/seabuild/internal/pipeline/types"
	"github.com/elskow/seabuild/internal/pipeline/validator"
)

type Factory struct {
	config    *config.PipelineConfig
	store     runtime.Store
	runner    toolchain.Runner
	signer    Signer
	validator validator.Validator
	host      types.Platform
	logger    *zap.Logger
}

type FactoryInterface interface {
	CreateBuilder(platform types.Platform, workspace *Workspace) (Builder, error)
}

func NewBuilderFactory(
	config *config.PipelineConfig,
	store runtime.Store,
	runner toolchain.Runner,
	signer Signer,
	validator validator.Validator,
	logger *zap.Logger,
) (*Factory, error) {
	host, err := types.HostPlatform()
	if err != nil {
		return nil, err
	}

	return &Factory{
		config:    config,
		store:     store,
		runner:    runner,
		signer:    signer,
		validator: validator,
		host:      host,
		logger:    logger,
	}, nil
}

func (f *Factory) CreateBuilder(platform types.Platform, workspace *Workspace) (Builder, error) {
	if _, err := types.ParsePlatform(platform.ID); err != nil {
		return nil, err
	}

	return &SEABuilder{
		config:    f.config,
		platform:  platform,
		host:      f.host,
		workspace: workspace,
		store:     f.store,
		runner:    f.runner,
		signer:    f.signer,
		validator: f.validator,
		logger:    f.logger.With(zap.String("platform", platform.ID)),
	}, nil
}
