package validator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elskow/seabuild/internal/pipeline/config"
	"github.com/elskow/seabuild/internal/pipeline/toolchain"
	"github.com/elskow/seabuild/internal/pipeline/types"
)

type mockRunner struct {
	result *toolchain.CommandResult
	err    error
	delay  time.Duration
	calls  int
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (*toolchain.CommandResult, error) {
	m.calls++
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func newTestValidator(runner toolchain.Runner) *SEAValidator {
	cfg := config.Default().Verify
	cfg.Timeout = 200 * time.Millisecond
	v := NewSEAValidator(&cfg, runner, zap.NewNop())
	v.host = types.Windows
	return v
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0755))
	return path
}

func TestSEAValidator_ValidateOptions(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "index.js", "console.log(1)")

	tests := []struct {
		name    string
		opts    types.BuildOptions
		wantErr bool
	}{
		{
			name: "valid",
			opts: types.BuildOptions{Main: main, Output: "app", Platforms: []string{"linux"}},
		},
		{
			name:    "missing main",
			opts:    types.BuildOptions{Main: filepath.Join(dir, "nope.js"), Output: "app", Platforms: []string{"linux"}},
			wantErr: true,
		},
		{
			name:    "main is a directory",
			opts:    types.BuildOptions{Main: dir, Output: "app", Platforms: []string{"linux"}},
			wantErr: true,
		},
		{
			name:    "empty main",
			opts:    types.BuildOptions{Output: "app", Platforms: []string{"linux"}},
			wantErr: true,
		},
		{
			name:    "output with separator",
			opts:    types.BuildOptions{Main: main, Output: "bin/app", Platforms: []string{"linux"}},
			wantErr: true,
		},
		{
			name:    "no platforms",
			opts:    types.BuildOptions{Main: main, Output: "app"},
			wantErr: true,
		},
	}

	v := newTestValidator(&mockRunner{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateOptions(&tt.opts)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrInvalidOptions)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSEAValidator_ValidateExecutable(t *testing.T) {
	dir := t.TempDir()
	exe := writeFile(t, dir, "app.exe", "MZ")

	t.Run("non-verifying platform skips execution", func(t *testing.T) {
		runner := &mockRunner{}
		require.NoError(t, newTestValidator(runner).ValidateExecutable(context.Background(), types.Linux, exe))
		assert.Zero(t, runner.calls)
	})

	t.Run("injected executable passes", func(t *testing.T) {
		runner := &mockRunner{result: &toolchain.CommandResult{Stdout: "hello from app\n"}}
		require.NoError(t, newTestValidator(runner).ValidateExecutable(context.Background(), types.Windows, exe))
		assert.Equal(t, 1, runner.calls)
	})

	t.Run("bare runtime banner fails", func(t *testing.T) {
		runner := &mockRunner{result: &toolchain.CommandResult{Stdout: "Welcome to Node.js v20.11.1.\n"}}
		err := newTestValidator(runner).ValidateExecutable(context.Background(), types.Windows, exe)
		assert.ErrorIs(t, err, types.ErrVerification)
	})

	t.Run("timeout fails", func(t *testing.T) {
		runner := &mockRunner{delay: time.Second}
		err := newTestValidator(runner).ValidateExecutable(context.Background(), types.Windows, exe)
		assert.ErrorIs(t, err, types.ErrVerification)
		assert.Contains(t, err.Error(), "did not exit")
	})

	t.Run("start failure", func(t *testing.T) {
		runner := &mockRunner{err: errors.New("exec format error")}
		err := newTestValidator(runner).ValidateExecutable(context.Background(), types.Windows, exe)
		assert.ErrorIs(t, err, types.ErrVerification)
	})

	t.Run("foreign host skips execution", func(t *testing.T) {
		runner := &mockRunner{}
		v := newTestValidator(runner)
		v.host = types.Linux

		require.NoError(t, v.ValidateExecutable(context.Background(), types.Windows, exe))
		assert.Zero(t, runner.calls)
	})

	t.Run("missing executable", func(t *testing.T) {
		err := newTestValidator(&mockRunner{}).ValidateExecutable(context.Background(), types.Linux, filepath.Join(dir, "gone"))
		assert.ErrorIs(t, err, types.ErrVerification)
	})
}
