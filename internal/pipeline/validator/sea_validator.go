package validator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/elskow/seabuild/internal/pipeline/config"
	"github.com/elskow/seabuild/internal/pipeline/toolchain"
	"github.com/elskow/seabuild/internal/pipeline/types"
)

type SEAValidator struct {
	config *config.VerifyConfig
	runner toolchain.Runner
	host   types.Platform
	logger *zap.Logger
}

func NewSEAValidator(config *config.VerifyConfig, runner toolchain.Runner, logger *zap.Logger) *SEAValidator {
	// An unknown host only means no executable can be run for verification.
	host, _ := types.HostPlatform()

	return &SEAValidator{
		config: config,
		runner: runner,
		host:   host,
		logger: logger,
	}
}

func (v *SEAValidator) ValidateOptions(opts *types.BuildOptions) error {
	if opts.Main == "" {
		return fmt.Errorf("%w: entry point is required", types.ErrInvalidOptions)
	}

	info, err := os.Stat(opts.Main)
	if err != nil {
		return fmt.Errorf("%w: entry point %s: %w", types.ErrInvalidOptions, opts.Main, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: entry point %s is not a regular file", types.ErrInvalidOptions, opts.Main)
	}

	if opts.Output == "" {
		return fmt.Errorf("%w: output name is required", types.ErrInvalidOptions)
	}
	if strings.ContainsAny(opts.Output, `/\`) {
		return fmt.Errorf("%w: output name %q must not contain path separators", types.ErrInvalidOptions, opts.Output)
	}

	if len(opts.Platforms) == 0 {
		return fmt.Errorf("%w: at least one platform is required", types.ErrInvalidOptions)
	}

	return nil
}

// ValidateExecutable confirms the executable exists. For platforms where a
// failed injection can exit cleanly and leave the bare runtime behind, it
// also runs the executable and fails if the runtime's own banner shows up.
// Executables the host cannot run are only checked for existence.
func (v *SEAValidator) ValidateExecutable(ctx context.Context, p types.Platform, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: executable not found: %w", types.ErrVerification, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: executable %s is empty", types.ErrVerification, path)
	}

	if !p.Verify {
		return nil
	}
	if p.ID != v.host.ID {
		v.logger.Warn("cannot run executable on this host, skipping verification",
			zap.String("platform", p.ID),
			zap.String("host", v.host.ID))
		return nil
	}

	verifyCtx, cancel := context.WithTimeout(ctx, v.config.Timeout)
	defer cancel()

	v.logger.Debug("verifying executable",
		zap.String("platform", p.ID),
		zap.String("path", path))

	res, err := v.runner.Run(verifyCtx, path, v.config.Args...)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s did not exit within %s", types.ErrVerification, path, v.config.Timeout)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrVerification, err)
	}

	if v.config.Banner != "" && strings.Contains(res.Output(), v.config.Banner) {
		return fmt.Errorf("%w: %s still behaves like a bare runtime, injection did not take effect", types.ErrVerification, path)
	}

	return nil
}
