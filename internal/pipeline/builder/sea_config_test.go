package builder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elskow/seabuild/internal/pipeline/types"
)

func TestNewSEAConfig(t *testing.T) {
	opts := &types.BuildOptions{
		Main:           "index.js",
		DisableWarning: true,
		UseSnapshot:    true,
		UseCodeCache:   true,
	}

	host, err := NewSEAConfig(opts, "/tmp/blob", false)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(host.Main))
	assert.True(t, host.UseSnapshot)
	assert.True(t, host.UseCodeCache)
	assert.True(t, host.DisableExperimentalSEAWarning)
	assert.Nil(t, host.Assets)

	cross, err := NewSEAConfig(opts, "/tmp/blob", true)
	require.NoError(t, err)
	assert.False(t, cross.UseSnapshot)
	assert.False(t, cross.UseCodeCache)
}

func TestSEAConfig_Write(t *testing.T) {
	dir := t.TempDir()

	t.Run("assets omitted when empty", func(t *testing.T) {
		cfg, err := NewSEAConfig(&types.BuildOptions{Main: "index.js"}, "/tmp/blob", false)
		require.NoError(t, err)

		path := filepath.Join(dir, "plain.json")
		require.NoError(t, cfg.Write(path))

		var raw map[string]any
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &raw))

		assert.NotContains(t, raw, "assets")
		for _, key := range []string{"main", "output", "disableExperimentalSEAWarning", "useSnapshot", "useCodeCache"} {
			assert.Contains(t, raw, key)
		}
	})

	t.Run("assets included", func(t *testing.T) {
		cfg, err := NewSEAConfig(&types.BuildOptions{
			Main:   "index.js",
			Assets: map[string]string{"config.json": "assets/config.json"},
		}, "/tmp/blob", false)
		require.NoError(t, err)

		path := filepath.Join(dir, "assets.json")
		require.NoError(t, cfg.Write(path))

		var decoded SEAConfig
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &decoded))

		require.Contains(t, decoded.Assets, "config.json")
		assert.True(t, filepath.IsAbs(decoded.Assets["config.json"]))
	})

	t.Run("unwritable path", func(t *testing.T) {
		cfg := SEAConfig{Main: "index.js"}
		err := cfg.Write(filepath.Join(dir, "missing", "dir", "cfg.json"))
		assert.ErrorIs(t, err, types.ErrConfigWrite)
	})
}
