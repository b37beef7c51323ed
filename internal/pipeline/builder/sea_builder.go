package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/elskow/seabuild/internal/pipeline/config"
	"github.com/elskow/seabuild/internal/pipeline/runtime"
	"github.com/elskow/seabuild/internal/pipeline/toolchain"
	"github.com/elskow/seabuild/internal/pipeline/types"
	"github.com/elskow/seabuild/internal/pipeline/validator"
)

// SEABuilder runs the single executable application pipeline for one platform:
// write the SEA config, generate the blob with the host runtime, copy the
// platform's base runtime to the output path, inject the blob, verify, sign.
type SEABuilder struct {
	config    *config.PipelineConfig
	platform  types.Platform
	host      types.Platform
	workspace *Workspace
	store     runtime.Store
	runner    toolchain.Runner
	signer    Signer
	validator validator.Validator
	logger    *zap.Logger
}

func (b *SEABuilder) Build(ctx context.Context, build *types.Build) (result *types.BuildResult, err error) {
	configPath := b.workspace.Path(fmt.Sprintf("sea-config-%s.json", b.platform.ID))
	blobPath := b.workspace.Path(fmt.Sprintf("sea-prep-%s.blob", b.platform.ID))

	build.StartTime = time.Now()
	defer func() {
		b.transition(build, types.BuildStatusCleaningUp)
		b.workspace.Cleanup(configPath, blobPath)

		completeTime := time.Now()
		build.CompleteTime = &completeTime
		if err != nil {
			b.transition(build, types.BuildStatusFailed)
			b.logger.Error("build failed", zap.Error(err))
			return
		}
		b.transition(build, types.BuildStatusDone)
	}()

	b.transition(build, types.BuildStatusConfiguring)
	if err := b.writeConfig(build.Options, configPath, blobPath); err != nil {
		return nil, err
	}

	b.transition(build, types.BuildStatusGeneratingArtifact)
	if err := b.generateBlob(ctx, configPath, blobPath); err != nil {
		return nil, err
	}

	b.transition(build, types.BuildStatusAssemblingExecutable)
	if err := b.assemble(ctx, build); err != nil {
		return nil, err
	}

	b.transition(build, types.BuildStatusInjecting)
	if err := b.inject(ctx, build.OutputPath, blobPath); err != nil {
		return nil, err
	}

	if b.platform.Verify {
		b.transition(build, types.BuildStatusVerifying)
	}
	if err := b.validator.ValidateExecutable(ctx, b.platform, build.OutputPath); err != nil {
		return nil, err
	}

	if b.platform.CanSign {
		b.transition(build, types.BuildStatusSigning)
		step := b.signer.Sign(ctx, b.platform, build.OutputPath)
		if !step.OK {
			b.logger.Warn("signing failed, executable left unsigned", zap.String("reason", step.Warning))
		}
		build.AddStep(step)
	}

	res := build.Result()
	res.Duration = time.Since(build.StartTime)
	return &res, nil
}

func (b *SEABuilder) transition(build *types.Build, status types.BuildStatus) {
	build.Status = status
	b.logger.Debug("build stage", zap.String("stage", string(status)))
}

func (b *SEABuilder) crossPlatform() bool {
	return b.platform.ID != b.host.ID
}

func (b *SEABuilder) writeConfig(opts *types.BuildOptions, configPath, blobPath string) error {
	cfg, err := NewSEAConfig(opts, blobPath, b.crossPlatform())
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrConfigWrite, err)
	}
	if b.crossPlatform() && (opts.UseSnapshot || opts.UseCodeCache) {
		b.logger.Info("snapshot and code cache disabled for cross-platform build")
	}
	return cfg.Write(configPath)
}

func (b *SEABuilder) generateBlob(ctx context.Context, configPath, blobPath string) error {
	node, err := b.store.Acquire(ctx, b.host)
	if err != nil {
		return fmt.Errorf("%w: host runtime: %w", types.ErrBlobGeneration, err)
	}

	res, err := b.runner.Run(ctx, node, "--experimental-sea-config", configPath)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrBlobGeneration, err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%w: node exited with %d: %s", types.ErrBlobGeneration, res.ExitCode, res.Output())
	}
	if _, err := os.Stat(blobPath); err != nil {
		return fmt.Errorf("%w: blob not written: %w", types.ErrBlobGeneration, err)
	}

	return nil
}

func (b *SEABuilder) assemble(ctx context.Context, build *types.Build) error {
	base, err := b.store.Acquire(ctx, b.platform)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(build.OutputPath), 0755); err != nil {
		return fmt.Errorf("%w: %w", types.ErrExecutableAssembly, err)
	}
	if err := copyExecutable(base, build.OutputPath); err != nil {
		return fmt.Errorf("%w: copy %s: %w", types.ErrExecutableAssembly, base, err)
	}

	b.logger.Info("base runtime copied",
		zap.String("source", base),
		zap.String("output", build.OutputPath))

	step := b.signer.Strip(ctx, b.platform, build.OutputPath)
	if !step.OK {
		b.logger.Warn("could not remove existing signature", zap.String("reason", step.Warning))
	}
	build.AddStep(step)

	return nil
}

func (b *SEABuilder) inject(ctx context.Context, exe, blobPath string) error {
	injector := b.config.Tools.Injector
	if len(injector) == 0 {
		return fmt.Errorf("%w: no injector configured", types.ErrInjection)
	}

	args := append([]string{}, injector[1:]...)
	args = append(args, exe, config.ResourceName, blobPath, "--sentinel-fuse", config.SentinelFuse)
	if b.platform.MachO {
		args = append(args, "--macho-segment-name", config.MachOSegmentName)
	}

	res, err := b.runner.Run(ctx, injector[0], args...)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrInjection, err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%w: injector exited with %d: %s", types.ErrInjection, res.ExitCode, res.Output())
	}

	return nil
}

// copyExecutable copies src to dst, keeping the source permissions plus
// owner write so the injector can modify the copy in place.
func copyExecutable(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return err
	}
	mode := info.Mode().Perm() | 0200

	target, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(target, source); err != nil {
		target.Close()
		return err
	}
	if err := target.Close(); err != nil {
		return err
	}

	return os.Chmod(dst, mode)
}
