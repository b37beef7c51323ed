package builder

import (
	"context"

	"go.uber.org/zap"

	"github.com/elskow/seabuild/internal/pipeline/config"
	"github.com/elskow/seabuild/internal/pipeline/toolchain"
	"github.com/elskow/seabuild/internal/pipeline/types"
)

// Signer removes and applies code signatures. Both operations are best
// effort: an unsigned executable still runs, it may just be blocked by OS
// gatekeeping.
type Signer interface {
	Strip(ctx context.Context, p types.Platform, exe string) types.StepResult
	Sign(ctx context.Context, p types.Platform, exe string) types.StepResult
}

type ToolSigner struct {
	tools   *config.ToolsConfig
	signing *config.SigningConfig
	runner  toolchain.Runner
	logger  *zap.Logger
}

func NewToolSigner(cfg *config.PipelineConfig, runner toolchain.Runner, logger *zap.Logger) *ToolSigner {
	return &ToolSigner{
		tools:   &cfg.Tools,
		signing: &cfg.Signing,
		runner:  runner,
		logger:  logger,
	}
}

func (s *ToolSigner) Strip(ctx context.Context, p types.Platform, exe string) types.StepResult {
	switch p.ID {
	case types.MacOS.ID:
		return s.run(ctx, "remove signature", s.tools.Codesign, "--remove-signature", exe)
	case types.Windows.ID:
		return s.run(ctx, "remove signature", s.tools.Signtool, "remove", "/s", exe)
	default:
		return types.Succeeded()
	}
}

func (s *ToolSigner) Sign(ctx context.Context, p types.Platform, exe string) types.StepResult {
	if !p.CanSign || !s.signing.Enabled {
		return types.Succeeded()
	}

	switch p.ID {
	case types.MacOS.ID:
		return s.run(ctx, "sign", s.tools.Codesign, "--sign", s.signing.Identity, "--force", exe)
	case types.Windows.ID:
		return s.run(ctx, "sign", s.tools.Signtool, "sign", "/fd", "SHA256", exe)
	default:
		return types.Succeeded()
	}
}

func (s *ToolSigner) run(ctx context.Context, action, tool string, args ...string) types.StepResult {
	res, err := s.runner.Run(ctx, tool, args...)
	if err != nil {
		return types.Warned("%s: %s unavailable: %v", action, tool, err)
	}
	if res.ExitCode != 0 {
		return types.Warned("%s: %s exited with %d: %s", action, tool, res.ExitCode, res.Output())
	}
	return types.Succeeded()
}
