package types

import "time"

// BuildStatus is the stage a platform build is in.
type BuildStatus string

const (
	BuildStatusPending              BuildStatus = "pending"
	BuildStatusConfiguring          BuildStatus = "configuring"
	BuildStatusGeneratingArtifact   BuildStatus = "generating_artifact"
	BuildStatusAssemblingExecutable BuildStatus = "assembling_executable"
	BuildStatusInjecting            BuildStatus = "injecting"
	BuildStatusVerifying            BuildStatus = "verifying"
	BuildStatusSigning              BuildStatus = "signing"
	BuildStatusCleaningUp           BuildStatus = "cleaning_up"
	BuildStatusDone                 BuildStatus = "done"
	BuildStatusFailed               BuildStatus = "failed"
)

// Build tracks one platform's pass through the pipeline.
type Build struct {
	SessionID    string
	Platform     Platform
	Options      *BuildOptions
	Executable   string // File name of the produced executable.
	OutputPath   string // Absolute path the executable is written to.
	Status       BuildStatus
	Warnings     []string
	StartTime    time.Time
	CompleteTime *time.Time
}

// AddStep records a best-effort step, keeping its warning if it failed.
func (b *Build) AddStep(step StepResult) {
	if !step.OK && step.Warning != "" {
		b.Warnings = append(b.Warnings, step.Warning)
	}
}

// Result converts a finished build into its success result.
func (b *Build) Result() BuildResult {
	r := BuildResult{
		Platform:   b.Platform.ID,
		Success:    true,
		Executable: b.Executable,
		Path:       b.OutputPath,
		SessionID:  b.SessionID,
		Warnings:   b.Warnings,
	}
	if b.CompleteTime != nil {
		r.Duration = b.CompleteTime.Sub(b.StartTime)
	}
	return r
}
