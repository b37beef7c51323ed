package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/elskow/seabuild/internal/pipeline/builder"
)

// Session owns the workspace of one Run call.
type Session struct {
	ID        string
	Workspace *builder.Workspace
	CreatedAt time.Time

	closeOnce sync.Once
}

// NewSession creates a session with a time-ordered random identifier.
func NewSession(workspaceRoot string, logger *zap.Logger) (*Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	ws, err := builder.NewWorkspace(workspaceRoot, id.String(), logger)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:        id.String(),
		Workspace: ws,
		CreatedAt: time.Now(),
	}, nil
}

// Close tears the workspace down. Only the first call has any effect.
func (s *Session) Close() {
	s.closeOnce.Do(s.Workspace.Teardown)
}
