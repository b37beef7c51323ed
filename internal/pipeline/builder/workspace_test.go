package builder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWorkspace(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "root")

	ws, err := NewWorkspace(root, "abc", zap.NewNop())
	require.NoError(t, err)
	assert.DirExists(t, ws.Dir)
	assert.Equal(t, filepath.Join(root, "sea-build-abc"), ws.Dir)

	// Reusing an existing directory is fine.
	_, err = NewWorkspace(root, "abc", zap.NewNop())
	require.NoError(t, err)
}

func TestWorkspace_CleanupAndTeardown(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir(), "session", zap.NewNop())
	require.NoError(t, err)

	keep := ws.Path("keep.txt")
	drop := ws.Path("drop.txt")
	require.NoError(t, os.WriteFile(keep, nil, 0644))
	require.NoError(t, os.WriteFile(drop, nil, 0644))

	ws.Cleanup(drop, ws.Path("never-existed"))
	assert.NoFileExists(t, drop)
	assert.FileExists(t, keep)

	ws.Teardown()
	assert.NoDirExists(t, ws.Dir)

	// Idempotent.
	ws.Teardown()
}
