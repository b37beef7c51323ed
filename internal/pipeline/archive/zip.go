package archive

import (
	"archive/zip"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/elskow/seabuild/internal/pipeline/types"
)

type ZipExtractor struct{}

// Extract streams the first entry whose name ends with the member's file
// name. The central directory is read up front, entry contents are not.
func (ZipExtractor) Extract(archivePath, destDir, member string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", types.ErrExtraction, archivePath, err)
	}
	defer r.Close()

	name := binaryName(member)
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, name) {
			continue
		}

		src, err := f.Open()
		if err != nil {
			return fmt.Errorf("%w: open entry %s: %w", types.ErrExtraction, f.Name, err)
		}
		err = writeFile(filepath.Join(destDir, name), src, 0644)
		src.Close()
		if err != nil {
			return fmt.Errorf("%w: write %s: %w", types.ErrExtraction, name, err)
		}
		return nil
	}

	return fmt.Errorf("%w: %s not found in %s", types.ErrExtraction, name, filepath.Base(archivePath))
}
