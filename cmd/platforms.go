package main

import (
	"fmt"
	"os"

	"github.com/elskow/seabuild/internal/pipeline/types"
)

type PlatformsCmd struct{}

func (c *PlatformsCmd) Run() error {
	host, _ := types.HostPlatform()

	for _, p := range types.Platforms() {
		line := fmt.Sprintf("%-8s %s", p.ID, p.DisplayName)
		if p.ID == host.ID {
			line += " " + mutedStyle.Render("(host)")
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}
