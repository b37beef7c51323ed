package builder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// SessionPrefix names every session directory under the workspace root so
// abandoned sessions can be found and swept later.
const SessionPrefix = "sea-build-"

// Workspace is the scratch directory owned by one build session.
type Workspace struct {
	Root   string
	Dir    string
	logger *zap.Logger
}

func NewWorkspace(root, sessionID string, logger *zap.Logger) (*Workspace, error) {
	ws := &Workspace{
		Root:   root,
		Dir:    filepath.Join(root, SessionPrefix+sessionID),
		logger: logger,
	}

	if err := os.MkdirAll(ws.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", ws.Dir, err)
	}

	return ws, nil
}

// Path returns the location of a file inside the session directory.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Cleanup removes individual files, logging failures instead of returning them.
func (w *Workspace) Cleanup(paths ...string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			w.logger.Warn("failed to remove intermediate file",
				zap.String("path", path),
				zap.Error(err))
		}
	}
}

// Teardown removes the whole session directory.
func (w *Workspace) Teardown() {
	if err := os.RemoveAll(w.Dir); err != nil {
		w.logger.Warn("failed to remove workspace",
			zap.String("dir", w.Dir),
			zap.Error(err))
		return
	}
	w.logger.Debug("workspace removed", zap.String("dir", w.Dir))
}
