package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	dockerarchive "github.com/docker/docker/pkg/archive"

	"github.com/elskow/seabuild/internal/pipeline/types"
)

type TarGzExtractor struct{}

// Extract writes only the entry whose cleaned path equals member, then moves
// it up to destDir and removes the version-named directory it was nested in.
func (TarGzExtractor) Extract(archivePath, destDir, member string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", types.ErrExtraction, archivePath, err)
	}
	defer f.Close()

	stream, err := dockerarchive.DecompressStream(f)
	if err != nil {
		return fmt.Errorf("%w: decompress %s: %w", types.ErrExtraction, archivePath, err)
	}
	defer stream.Close()

	member = path.Clean(member)
	nested := filepath.Join(destDir, filepath.FromSlash(member))

	found, err := extractMember(tar.NewReader(stream), member, nested)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrExtraction, err)
	}
	if !found {
		return fmt.Errorf("%w: %s not found in %s", types.ErrExtraction, member, filepath.Base(archivePath))
	}

	final := filepath.Join(destDir, binaryName(member))
	if err := os.Rename(nested, final); err != nil {
		return fmt.Errorf("%w: move %s: %w", types.ErrExtraction, member, err)
	}

	top, _, _ := strings.Cut(member, "/")
	if top != binaryName(member) {
		if err := os.RemoveAll(filepath.Join(destDir, top)); err != nil {
			return fmt.Errorf("%w: remove %s: %w", types.ErrExtraction, top, err)
		}
	}

	return nil
}

func extractMember(tr *tar.Reader, member, dst string) (bool, error) {
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("read tar: %w", err)
		}

		if hdr.Typeflag != tar.TypeReg || path.Clean(hdr.Name) != member {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return false, err
		}
		if err := writeFile(dst, tr, hdr.FileInfo().Mode().Perm()); err != nil {
			return false, fmt.Errorf("write %s: %w", member, err)
		}
		return true, nil
	}
}
