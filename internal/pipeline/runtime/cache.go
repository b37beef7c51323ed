package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/elskow/seabuild/internal/pipeline/archive"
	"github.com/elskow/seabuild/internal/pipeline/config"
	"github.com/elskow/seabuild/internal/pipeline/types"
)

const executableMode os.FileMode = 0755

// Store hands out the path of a base runtime binary for a platform.
type Store interface {
	Acquire(ctx context.Context, p types.Platform) (string, error)
}

type Cache struct {
	root     string
	distURL  string
	hostNode string
	host     types.Platform
	resolver VersionResolver
	client   *http.Client
	logger   *zap.Logger

	// Collapses concurrent cold-cache downloads of the same platform and
	// version within this process. Separate processes may still race; the
	// final path is identical so the last writer wins.
	downloads singleflight.Group
}

func NewCache(cfg *config.PipelineConfig, resolver VersionResolver, client *http.Client, logger *zap.Logger) (*Cache, error) {
	host, err := types.HostPlatform()
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Cache{
		root:     cfg.CacheDir,
		distURL:  cfg.NodeJS.DistURL,
		hostNode: cfg.Tools.Node,
		host:     host,
		resolver: resolver,
		client:   client,
		logger:   logger,
	}, nil
}

// Acquire returns the path of the runtime binary for p, downloading it on a
// cache miss. The host platform is served by the host's own node binary.
func (c *Cache) Acquire(ctx context.Context, p types.Platform) (string, error) {
	if p.ID == c.host.ID {
		return c.hostRuntime()
	}

	platform, err := types.ParsePlatform(p.ID)
	if err != nil {
		return "", err
	}

	version := c.resolver.Resolve(ctx)
	binPath := c.BinaryPath(platform, version)

	if exists(binPath) {
		c.logger.Info("using cached runtime",
			zap.String("platform", platform.ID),
			zap.String("version", version),
			zap.String("path", binPath))
		return binPath, nil
	}

	key := platform.ID + "/" + version
	_, err, _ = c.downloads.Do(key, func() (any, error) {
		return nil, c.populate(ctx, platform, version)
	})
	if err != nil {
		return "", err
	}

	return binPath, nil
}

// BinaryPath returns where the runtime for a platform and version is cached.
func (c *Cache) BinaryPath(p types.Platform, version string) string {
	return filepath.Join(c.root, p.ID, version, p.BinaryName)
}

func (c *Cache) hostRuntime() (string, error) {
	if c.hostNode != "" {
		if !exists(c.hostNode) {
			return "", fmt.Errorf("%w: host runtime %s does not exist", types.ErrExecutableAssembly, c.hostNode)
		}
		return c.hostNode, nil
	}

	path, err := exec.LookPath("node")
	if err != nil {
		return "", fmt.Errorf("%w: node not found on PATH: %w", types.ErrExecutableAssembly, err)
	}
	return path, nil
}

func (c *Cache) populate(ctx context.Context, p types.Platform, version string) error {
	binPath := c.BinaryPath(p, version)
	if exists(binPath) {
		return nil
	}

	dir := filepath.Dir(binPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create cache directory: %w", types.ErrDownload, err)
	}

	url, err := DownloadURL(c.distURL, version, p)
	if err != nil {
		return err
	}

	archivePath := filepath.Join(dir, archive.ArchiveName(p, version))
	defer func() {
		if err := os.Remove(archivePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			c.logger.Warn("failed to remove runtime archive",
				zap.String("path", archivePath),
				zap.Error(err))
		}
	}()

	c.logger.Info("downloading runtime",
		zap.String("platform", p.ID),
		zap.String("version", version),
		zap.String("url", url))

	if err := c.download(ctx, url, archivePath); err != nil {
		return err
	}

	if err := c.install(archivePath, dir, binPath, p, version); err != nil {
		// A binary left behind would be served as a cache hit from now on.
		if rmErr := os.Remove(binPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			c.logger.Warn("failed to remove incomplete runtime",
				zap.String("path", binPath),
				zap.Error(rmErr))
		}
		return err
	}

	c.logger.Info("runtime cached",
		zap.String("platform", p.ID),
		zap.String("version", version),
		zap.String("path", binPath))

	return nil
}

func (c *Cache) install(archivePath, dir, binPath string, p types.Platform, version string) error {
	extractor, err := archive.ForPlatform(p)
	if err != nil {
		return err
	}
	if err := extractor.Extract(archivePath, dir, archive.MemberName(p, version)); err != nil {
		return err
	}

	if !exists(binPath) {
		return fmt.Errorf("%w: %s missing after extraction", types.ErrExtraction, binPath)
	}

	if p.ID != types.Windows.ID {
		if err := os.Chmod(binPath, executableMode); err != nil {
			return fmt.Errorf("%w: chmod %s: %w", types.ErrExtraction, binPath, err)
		}
	}

	return nil
}

func (c *Cache) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrDownload, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %s", types.ErrDownload, url, resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrDownload, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return fmt.Errorf("%w: write %s: %w", types.ErrDownload, dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %w", types.ErrDownload, err)
	}

	return nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
