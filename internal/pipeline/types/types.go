package types

import (
	"fmt"
	goruntime "runtime"
	"strings"
	"time"
)

type ArchiveKind string

const (
	ArchiveTarGz ArchiveKind = "tar.gz"
	ArchiveZip   ArchiveKind = "zip"
)

// Platform is one of the fixed build targets. Platform-specific behavior is
// carried as data on the value instead of string comparisons at call sites.
type Platform struct {
	ID          string      // Identifier used on the command line and in cache paths.
	DisplayName string      // Human-readable name.
	DistToken   string      // Token used in Node.js distribution file names.
	GOOS        string      // Matching runtime.GOOS value.
	BinaryName  string      // Canonical runtime binary name inside the archive.
	Archive     ArchiveKind // Distribution archive format.
	CanSign     bool        // Supports code signing.
	Verify      bool        // Requires post-injection verification.
	MachO       bool        // Injection needs a Mach-O segment name.
}

var (
	Linux = Platform{
		ID:          "linux",
		DisplayName: "Linux",
		DistToken:   "linux",
		GOOS:        "linux",
		BinaryName:  "node",
		Archive:     ArchiveTarGz,
	}
	MacOS = Platform{
		ID:          "darwin",
		DisplayName: "macOS",
		DistToken:   "darwin",
		GOOS:        "darwin",
		BinaryName:  "node",
		Archive:     ArchiveTarGz,
		CanSign:     true,
		MachO:       true,
	}
	Windows = Platform{
		ID:          "win32",
		DisplayName: "Windows",
		DistToken:   "win",
		GOOS:        "windows",
		BinaryName:  "node.exe",
		Archive:     ArchiveZip,
		CanSign:     true,
		Verify:      true,
	}
)

// Platforms returns the supported targets in display order.
func Platforms() []Platform {
	return []Platform{Linux, MacOS, Windows}
}

// ParsePlatform maps a platform identifier or one of its aliases to a Platform.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linux":
		return Linux, nil
	case "darwin", "macos", "mac":
		return MacOS, nil
	case "win32", "windows", "win":
		return Windows, nil
	default:
		return Platform{}, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, name)
	}
}

// HostPlatform returns the platform the current process runs on.
func HostPlatform() (Platform, error) {
	return platformForGOOS(goruntime.GOOS)
}

func platformForGOOS(goos string) (Platform, error) {
	for _, p := range Platforms() {
		if p.GOOS == goos {
			return p, nil
		}
	}
	return Platform{}, fmt.Errorf("%w: host %q", ErrUnsupportedPlatform, goos)
}

func (p Platform) String() string {
	return p.ID
}

// ExecutableName returns base with the platform's executable suffix applied.
// Applying it more than once has no further effect.
func (p Platform) ExecutableName(base string) string {
	if p.ID != Windows.ID {
		return base
	}
	if strings.HasSuffix(strings.ToLower(base), ".exe") {
		return base
	}
	return base + ".exe"
}

type BuildOptions struct {
	Main           string            // Entry point script.
	Output         string            // Output executable base name.
	OutputDir      string            // Directory receiving executables. Defaults to the working directory.
	DisableWarning bool              // Suppress the experimental SEA warning.
	UseSnapshot    bool              // Build a startup snapshot (host platform only).
	UseCodeCache   bool              // Embed a code cache (host platform only).
	Assets         map[string]string // Virtual asset path to source path.
	Platforms      []string          // Requested platform identifiers, in order.
}

// StepResult is the outcome of a best-effort step. A failed step never fails
// the build; its warning is collected on the BuildResult instead.
type StepResult struct {
	OK      bool
	Warning string
}

func Succeeded() StepResult {
	return StepResult{OK: true}
}

func Warned(format string, args ...any) StepResult {
	return StepResult{Warning: fmt.Sprintf(format, args...)}
}

type BuildResult struct {
	Platform   string        `json:"platform"`
	Success    bool          `json:"success"`
	Executable string        `json:"executable,omitempty"`
	Path       string        `json:"path,omitempty"`
	SessionID  string        `json:"session_id,omitempty"`
	Warnings   []string      `json:"warnings,omitempty"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// FailedResult builds the result reported for a platform whose pipeline failed.
func FailedResult(platform string, err error) BuildResult {
	return BuildResult{
		Platform: platform,
		Success:  false,
		Error:    err.Error(),
	}
}
