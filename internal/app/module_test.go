package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zapcore"

	"github.com/elskow/seabuild/internal/config"
	"github.com/elskow/seabuild/internal/pipeline"
	pipelineconfig "github.com/elskow/seabuild/internal/pipeline/config"
)

func TestModule_Wiring(t *testing.T) {
	root := t.TempDir()
	t.Setenv("SEABUILD_PIPELINE_WORKSPACE_ROOT", filepath.Join(root, "workspaces"))
	t.Setenv("SEABUILD_PIPELINE_CACHE_DIR", filepath.Join(root, "cache"))
	t.Chdir(root)

	var (
		p       *pipeline.Pipeline
		cleanup *pipeline.CleanupManager
		cfg     *pipelineconfig.PipelineConfig
	)

	app := fxtest.New(t,
		Module(config.Source{LogLevel: "error"}),
		fx.Populate(&p, &cleanup, &cfg),
	)
	require.NoError(t, app.Err())

	assert.NotNil(t, p)
	assert.NotNil(t, cleanup)
	assert.Equal(t, filepath.Join(root, "workspaces"), cfg.WorkspaceRoot)
	assert.Equal(t, filepath.Join(root, "cache"), cfg.CacheDir)
}

func TestNewLogger_SourceOverridesConfig(t *testing.T) {
	cfg := &config.AppConfig{Env: config.EnvDevelopment, Log: config.LogConfig{Level: "info"}}

	logger, err := newLogger(cfg, config.Source{LogLevel: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = newLogger(cfg, config.Source{LogLevel: "loud"})
	assert.Error(t, err)
}
