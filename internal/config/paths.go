package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "seabuild"

// Default location of cached runtime binaries.
//
//	Linux:   $XDG_CACHE_HOME/seabuild/runtimes or ~/.cache/seabuild/runtimes
//	macOS:   ~/Library/Caches/seabuild/runtimes
//	Windows: %LOCALAPPDATA%\cache\seabuild\runtimes
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, appName, "runtimes")
}

// Default root for per-session build workspaces.
func DefaultWorkspaceRoot() string {
	return filepath.Join(os.TempDir(), appName)
}

// Directory searched for seabuild.toml after the working directory.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}
