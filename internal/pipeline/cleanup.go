package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/elskow/seabuild/internal/pipeline/builder"
	"github.com/elskow/seabuild/internal/pipeline/config"
)

// CleanupManager removes session workspaces left behind by builds that were
// killed before they could tear down.
type CleanupManager struct {
	config *config.PipelineConfig
	logger *zap.Logger
}

func NewCleanupManager(config *config.PipelineConfig, logger *zap.Logger) *CleanupManager {
	return &CleanupManager{
		config: config,
		logger: logger,
	}
}

// CleanupWorkspaces removes every session directory under the workspace root
// that is older than maxAge, or all of them when maxAge is zero. Failures on
// individual directories are logged and skipped. Returns how many were removed.
func (cm *CleanupManager) CleanupWorkspaces(maxAge time.Duration) (int, error) {
	now := time.Now()
	dirs, err := os.ReadDir(cm.config.WorkspaceRoot)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read workspace root: %w", err)
	}

	removed := 0
	for _, dir := range dirs {
		if !dir.IsDir() || !strings.HasPrefix(dir.Name(), builder.SessionPrefix) {
			continue
		}

		if maxAge > 0 {
			info, err := dir.Info()
			if err != nil {
				cm.logger.Warn("failed to get directory info",
					zap.String("dir", dir.Name()),
					zap.Error(err))
				continue
			}
			if now.Sub(info.ModTime()) <= maxAge {
				continue
			}
		}

		path := filepath.Join(cm.config.WorkspaceRoot, dir.Name())
		if err := os.RemoveAll(path); err != nil {
			cm.logger.Warn("failed to remove workspace",
				zap.String("path", path),
				zap.Error(err))
			continue
		}
		removed++
	}

	cm.logger.Info("workspace sweep finished",
		zap.String("root", cm.config.WorkspaceRoot),
		zap.Int("removed", removed))

	return removed, nil
}

// SweepWorkspaces removes every session directory under root regardless of age.
func SweepWorkspaces(root string, logger *zap.Logger) (int, error) {
	cm := NewCleanupManager(&config.PipelineConfig{WorkspaceRoot: root}, logger)
	return cm.CleanupWorkspaces(0)
}
