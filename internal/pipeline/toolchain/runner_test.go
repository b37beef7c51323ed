//go:build !windows

package toolchain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExecRunner_Run(t *testing.T) {
	runner := NewExecRunner(zap.NewNop())

	t.Run("captures output", func(t *testing.T) {
		res, err := runner.Run(context.Background(), "sh", "-c", "echo out; echo err >&2")
		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode)
		assert.Equal(t, "out\n", res.Stdout)
		assert.Equal(t, "err\n", res.Stderr)
		assert.Equal(t, "out\nerr", res.Output())
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		res, err := runner.Run(context.Background(), "sh", "-c", "exit 3")
		require.NoError(t, err)
		assert.Equal(t, 3, res.ExitCode)
	})

	t.Run("missing program", func(t *testing.T) {
		_, err := runner.Run(context.Background(), "definitely-not-a-real-program-xyz")
		assert.Error(t, err)
	})

	t.Run("deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := runner.Run(ctx, "sleep", "5")
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}
