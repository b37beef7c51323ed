package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/elskow/seabuild/internal/pipeline/types"
)

// SEAConfig is the input file of `node --experimental-sea-config`.
type SEAConfig struct {
	Main                          string            `json:"main"`
	Output                        string            `json:"output"`
	DisableExperimentalSEAWarning bool              `json:"disableExperimentalSEAWarning"`
	UseSnapshot                   bool              `json:"useSnapshot"`
	UseCodeCache                  bool              `json:"useCodeCache"`
	Assets                        map[string]string `json:"assets,omitempty"`
}

// NewSEAConfig builds the configuration for one platform. Snapshots and code
// caches are tied to the host runtime, so they are disabled for cross builds.
func NewSEAConfig(opts *types.BuildOptions, blobPath string, crossPlatform bool) (SEAConfig, error) {
	main, err := filepath.Abs(opts.Main)
	if err != nil {
		return SEAConfig{}, err
	}

	cfg := SEAConfig{
		Main:                          main,
		Output:                        blobPath,
		DisableExperimentalSEAWarning: opts.DisableWarning,
		UseSnapshot:                   opts.UseSnapshot && !crossPlatform,
		UseCodeCache:                  opts.UseCodeCache && !crossPlatform,
	}

	if len(opts.Assets) > 0 {
		cfg.Assets = make(map[string]string, len(opts.Assets))
		for key, src := range opts.Assets {
			abs, err := filepath.Abs(src)
			if err != nil {
				return SEAConfig{}, err
			}
			cfg.Assets[key] = abs
		}
	}

	return cfg, nil
}

func (c SEAConfig) Write(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrConfigWrite, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", types.ErrConfigWrite, err)
	}
	return nil
}
