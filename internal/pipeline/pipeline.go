package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/elskow/seabuild/internal/pipeline/builder"
	"github.com/elskow/seabuild/internal/pipeline/config"
	"github.com/elskow/seabuild/internal/pipeline/types"
	"github.com/elskow/seabuild/internal/pipeline/validator"
)

// Pipeline fans a build out across the requested platforms. Platforms are
// built one after another inside a single session; a failing platform is
// reported and the next one still runs.
type Pipeline struct {
	config         *config.PipelineConfig
	builderFactory builder.FactoryInterface
	validator      validator.Validator
	logger         *zap.Logger
	metrics        *MetricsCollector
}

func NewPipeline(
	config *config.PipelineConfig,
	builderFactory *builder.Factory,
	validator validator.Validator,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		config:         config,
		builderFactory: builderFactory,
		validator:      validator,
		logger:         logger,
		metrics:        NewMetricsCollector(),
	}
}

// Run builds every requested platform and returns one result per platform in
// request order. The returned error is reserved for problems that prevent
// the session from starting at all.
func (p *Pipeline) Run(ctx context.Context, opts types.BuildOptions) ([]types.BuildResult, error) {
	if len(opts.Platforms) == 0 {
		host, err := types.HostPlatform()
		if err != nil {
			return nil, err
		}
		opts.Platforms = []string{host.ID}
	}

	if err := p.validator.ValidateOptions(&opts); err != nil {
		return nil, fmt.Errorf("build validation failed: %w", err)
	}

	session, err := NewSession(p.config.WorkspaceRoot, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create build session: %w", err)
	}
	defer session.Close()

	p.logger.Info("starting build session",
		zap.String("session_id", session.ID),
		zap.String("main", opts.Main),
		zap.Strings("platforms", opts.Platforms))

	results := make([]types.BuildResult, 0, len(opts.Platforms))
	for _, name := range opts.Platforms {
		results = append(results, p.buildPlatform(ctx, session, &opts, name))
	}

	for _, m := range p.metrics.Session(session.ID) {
		p.logger.Debug("platform timing",
			zap.String("platform", m.Platform),
			zap.String("status", string(m.Status)),
			zap.Int("warnings", m.Warnings),
			zap.Duration("duration", m.Duration))
	}

	p.logger.Info("build session finished",
		zap.String("session_id", session.ID),
		zap.Int("succeeded", Succeeded(results)),
		zap.Int("total", len(results)),
		zap.Duration("duration", time.Since(session.CreatedAt)))

	return results, nil
}

func (p *Pipeline) buildPlatform(ctx context.Context, session *Session, opts *types.BuildOptions, name string) types.BuildResult {
	platform, err := types.ParsePlatform(name)
	if err != nil {
		p.logger.Error("skipping platform", zap.String("platform", name), zap.Error(err))
		failed := types.FailedResult(name, err)
		failed.SessionID = session.ID
		return failed
	}

	p.metrics.Start(session.ID, platform.ID)
	started := time.Now()

	result, err := p.executeBuild(ctx, session, opts, platform, len(opts.Platforms) > 1)
	if err != nil {
		failed := types.FailedResult(platform.ID, err)
		failed.SessionID = session.ID
		failed.Duration = time.Since(started)
		p.metrics.Finish(session.ID, failed)
		return failed
	}

	p.metrics.Finish(session.ID, *result)
	p.logger.Info("platform built",
		zap.String("platform", platform.ID),
		zap.String("path", result.Path),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("duration", result.Duration))

	return *result
}

func (p *Pipeline) executeBuild(ctx context.Context, session *Session, opts *types.BuildOptions, platform types.Platform, multi bool) (*types.BuildResult, error) {
	exe := platform.ExecutableName(opts.Output)
	outputPath, err := outputPath(opts.OutputDir, platform, exe, multi)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrExecutableAssembly, err)
	}

	b, err := p.builderFactory.CreateBuilder(platform, session.Workspace)
	if err != nil {
		return nil, fmt.Errorf("failed to create builder: %w", err)
	}

	build := &types.Build{
		SessionID:  session.ID,
		Platform:   platform,
		Options:    opts,
		Executable: exe,
		OutputPath: outputPath,
		Status:     types.BuildStatusPending,
	}

	return b.Build(ctx, build)
}

// Metrics returns the per-platform timings recorded so far.
func (p *Pipeline) Metrics() *MetricsCollector {
	return p.metrics
}

// outputPath places the executable in outputDir, or in a per-platform
// subdirectory of it when several platforms would otherwise share a name.
func outputPath(outputDir string, platform types.Platform, exe string, multi bool) (string, error) {
	if outputDir == "" {
		outputDir = "."
	}
	if multi {
		outputDir = filepath.Join(outputDir, platform.ID)
	}
	return filepath.Abs(filepath.Join(outputDir, exe))
}

// Succeeded counts the successful results.
func Succeeded(results []types.BuildResult) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}
