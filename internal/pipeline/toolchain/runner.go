// Package toolchain runs the external programs a build depends on: the host
// node binary (SEA blob generation), the injector, the platform signing
// tools and the freshly built executable during verification.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// CommandResult is the captured outcome of a finished process.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Output returns stdout and stderr combined, trimmed.
func (r *CommandResult) Output() string {
	return strings.TrimSpace(r.Stdout + "\n" + r.Stderr)
}

type Runner interface {
	// Run executes name with args and waits for it to exit. A non-zero exit
	// code is reported in the result, not as an error; errors are reserved
	// for processes that could not be started or were killed by ctx.
	Run(ctx context.Context, name string, args ...string) (*CommandResult, error)
}

type ExecRunner struct {
	logger *zap.Logger
}

func NewExecRunner(logger *zap.Logger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*CommandResult, error) {
	r.logger.Debug("running command",
		zap.String("command", name),
		zap.Strings("args", args))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	result := &CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}
