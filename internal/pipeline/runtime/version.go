package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/elskow/seabuild/internal/pipeline/config"
)

type VersionResolver interface {
	// Resolve never fails; it degrades to a known-good version instead.
	Resolve(ctx context.Context) string
}

// IndexEntry is one release in the Node.js distribution index.
type IndexEntry struct {
	Version string          `json:"version"`
	LTS     json.RawMessage `json:"lts"` // false, or the release line codename
}

// IsLTS reports whether the entry belongs to a long-term-support line.
func (e IndexEntry) IsLTS() bool {
	var codename string
	if err := json.Unmarshal(e.LTS, &codename); err == nil {
		return codename != ""
	}
	var flag bool
	if err := json.Unmarshal(e.LTS, &flag); err == nil {
		return flag
	}
	return false
}

type IndexResolver struct {
	config *config.NodeJSConfig
	client *http.Client
	logger *zap.Logger
}

func NewIndexResolver(config *config.NodeJSConfig, client *http.Client, logger *zap.Logger) *IndexResolver {
	if client == nil {
		client = &http.Client{Timeout: config.IndexTimeout}
	}
	return &IndexResolver{
		config: config,
		client: client,
		logger: logger,
	}
}

func (r *IndexResolver) Resolve(ctx context.Context) string {
	entries, err := r.fetchIndex(ctx)
	if err != nil {
		r.logger.Warn("version index unavailable, using fallback",
			zap.String("fallback", r.config.FallbackVersion),
			zap.Error(err))
		return r.config.FallbackVersion
	}

	version, ok := SelectVersion(entries, r.config)
	if !ok {
		r.logger.Warn("no suitable version in index, using fallback",
			zap.String("fallback", r.config.FallbackVersion),
			zap.Int("entries", len(entries)))
		return r.config.FallbackVersion
	}

	r.logger.Debug("resolved runtime version", zap.String("version", version))
	return version
}

func (r *IndexResolver) fetchIndex(ctx context.Context) ([]IndexEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.IndexURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index returned %s", resp.Status)
	}

	var entries []IndexEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("invalid version index: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("version index is empty")
	}

	return entries, nil
}

// SelectVersion picks a version from entries, which are expected newest
// first. Only stable releases within [MinVersion, MaxVersion] qualify. The
// first qualifying preferred version wins, then the newest LTS release of
// the preferred major line, then the first qualifying entry.
func SelectVersion(entries []IndexEntry, cfg *config.NodeJSConfig) (string, bool) {
	var candidates []IndexEntry
	for _, e := range entries {
		if isStable(e.Version) && inRange(e.Version, cfg.MinVersion, cfg.MaxVersion) {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	for _, preferred := range cfg.PreferredVersions {
		for _, c := range candidates {
			if canonical(c.Version) == canonical(preferred) {
				return trimV(c.Version), true
			}
		}
	}

	major := fmt.Sprintf("v%d", cfg.PreferredMajor)
	for _, c := range candidates {
		if c.IsLTS() && semver.Major(canonical(c.Version)) == major {
			return trimV(c.Version), true
		}
	}

	return trimV(candidates[0].Version), true
}

// IsVersionGreaterOrEqual compares dotted versions numerically. Missing
// components count as zero, so "20" equals "20.0.0".
func IsVersionGreaterOrEqual(version, minimum string) bool {
	return semver.Compare(canonical(version), canonical(minimum)) >= 0
}

func inRange(version, min, max string) bool {
	return IsVersionGreaterOrEqual(version, min) && IsVersionGreaterOrEqual(max, version)
}

func isStable(version string) bool {
	v := canonical(version)
	if !semver.IsValid(v) || semver.Prerelease(v) != "" {
		return false
	}
	lower := strings.ToLower(version)
	return !strings.Contains(lower, "rc") && !strings.Contains(lower, "beta")
}

func canonical(version string) string {
	return "v" + trimV(version)
}

func trimV(version string) string {
	return strings.TrimPrefix(strings.TrimSpace(version), "v")
}
