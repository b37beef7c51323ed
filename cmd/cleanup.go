package main

import (
	"fmt"
	"time"

	"github.com/elskow/seabuild/internal/pipeline"
)

type CleanupCmd struct {
	OlderThan time.Duration `help:"Only remove workspaces older than this. Zero removes all." default:"0s"`
}

func (c *CleanupCmd) Run(root *RootCmd) error {
	var cm *pipeline.CleanupManager
	logger, err := root.newApp(&cm)
	if err != nil {
		return err
	}
	defer logger.Sync()

	removed, err := cm.CleanupWorkspaces(c.OlderThan)
	if err != nil {
		return err
	}

	fmt.Printf("removed %d workspace(s)\n", removed)
	return nil
}
