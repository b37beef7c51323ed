package runtime

import (
	"fmt"
	"strings"

	"github.com/elskow/seabuild/internal/pipeline/archive"
	"github.com/elskow/seabuild/internal/pipeline/types"
)

// DownloadURL returns the distribution archive URL for a Node.js version and
// platform, e.g. https://nodejs.org/dist/v20.11.1/node-v20.11.1-win-x64.zip.
func DownloadURL(distURL, version string, p types.Platform) (string, error) {
	platform, err := types.ParsePlatform(p.ID)
	if err != nil {
		return "", err
	}

	version = trimV(version)
	return fmt.Sprintf("%s/v%s/%s", strings.TrimSuffix(distURL, "/"), version, archive.ArchiveName(platform, version)), nil
}
