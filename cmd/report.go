package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/elskow/seabuild/internal/pipeline"
	"github.com/elskow/seabuild/internal/pipeline/types"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
)

// printReport writes one line per platform, its warnings, and a summary.
func printReport(w io.Writer, results []types.BuildResult) {
	for _, r := range results {
		if r.Success {
			fmt.Fprintf(w, "%s %-6s %s %s\n",
				okStyle.Render("✓"), r.Platform, r.Path,
				mutedStyle.Render(r.Duration.Round(time.Millisecond).String()))
		} else {
			fmt.Fprintf(w, "%s %-6s %s\n", failStyle.Render("✗"), r.Platform, r.Error)
		}
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", warnStyle.Render("!"), warning)
		}
	}

	fmt.Fprintln(w, headerStyle.Render(
		fmt.Sprintf("%d/%d platforms built", pipeline.Succeeded(results), len(results))))
}
