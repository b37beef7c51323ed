// Package archive extracts a single runtime binary from a Node.js
// distribution archive. Windows distributions ship as zip files; the others
// ship as gzip-compressed tarballs. Everything except the requested member is
// skipped and never written to disk.
package archive

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/elskow/seabuild/internal/pipeline/types"
)

type Extractor interface {
	// Extract writes the archive member to destDir/<base name of member>.
	Extract(archivePath, destDir, member string) error
}

// ForPlatform returns the extractor matching the platform's archive format.
func ForPlatform(p types.Platform) (Extractor, error) {
	switch p.Archive {
	case types.ArchiveZip:
		return ZipExtractor{}, nil
	case types.ArchiveTarGz:
		return TarGzExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: no archive format for %q", types.ErrUnsupportedPlatform, p.ID)
	}
}

// MemberName returns the member to request from a platform's distribution
// archive. Zip archives are matched by file name suffix; tarballs by exact path.
func MemberName(p types.Platform, version string) string {
	if p.Archive == types.ArchiveZip {
		return p.BinaryName
	}
	return fmt.Sprintf("node-v%s-%s-x64/bin/%s", version, p.DistToken, p.BinaryName)
}

// ArchiveName returns the distribution file name for a version and platform.
func ArchiveName(p types.Platform, version string) string {
	return fmt.Sprintf("node-v%s-%s-x64.%s", version, p.DistToken, p.Archive)
}

// writeFile streams r into a sibling temp file and renames it onto dst only
// once the whole stream, including any trailing checksum, has been read.
func writeFile(dst string, r io.Reader, mode os.FileMode) error {
	tmp := dst + ".partial"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, dst)
}

func binaryName(member string) string {
	return path.Base(member)
}
