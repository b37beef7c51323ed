package config

import "time"

type PipelineConfig struct {
	WorkspaceRoot string        `mapstructure:"workspace_root"`
	CacheDir      string        `mapstructure:"cache_dir"`
	NodeJS        NodeJSConfig  `mapstructure:"nodejs"`
	Tools         ToolsConfig   `mapstructure:"tools"`
	Verify        VerifyConfig  `mapstructure:"verify"`
	Signing       SigningConfig `mapstructure:"signing"`
}

// NodeJSConfig controls which Node.js runtime is fetched for cross-platform builds.
type NodeJSConfig struct {
	DistURL           string        `mapstructure:"dist_url"`  // Base of the distribution host, e.g. https://nodejs.org/dist
	IndexURL          string        `mapstructure:"index_url"` // Version index JSON
	MinVersion        string        `mapstructure:"min_version"`
	MaxVersion        string        `mapstructure:"max_version"`
	PreferredVersions []string      `mapstructure:"preferred_versions"`
	PreferredMajor    int           `mapstructure:"preferred_major"`
	FallbackVersion   string        `mapstructure:"fallback_version"`
	IndexTimeout      time.Duration `mapstructure:"index_timeout"`
}

type ToolsConfig struct {
	Node     string   `mapstructure:"node"`     // Host node binary; looked up on PATH when empty.
	Injector []string `mapstructure:"injector"` // Injector command line prefix.
	Codesign string   `mapstructure:"codesign"`
	Signtool string   `mapstructure:"signtool"`
}

type VerifyConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Args    []string      `mapstructure:"args"`
	Banner  string        `mapstructure:"banner"` // Text printed by a bare runtime.
}

type SigningConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Identity string `mapstructure:"identity"` // codesign identity, "-" for ad-hoc.
}

const (
	SentinelFuse     = "NODE_SEA_FUSE_fce680ab2cc467b6e072b8b5df1996b2"
	ResourceName     = "NODE_SEA_BLOB"
	MachOSegmentName = "NODE_SEA"
)

// Default returns the configuration used when no file or environment overrides exist.
func Default() PipelineConfig {
	return PipelineConfig{
		NodeJS: NodeJSConfig{
			DistURL:           "https://nodejs.org/dist",
			IndexURL:          "https://nodejs.org/dist/index.json",
			MinVersion:        "19.9.0",
			MaxVersion:        "22.99.99",
			PreferredVersions: []string{"22.12.0", "20.18.1", "20.11.1"},
			PreferredMajor:    20,
			FallbackVersion:   "20.11.1",
			IndexTimeout:      10 * time.Second,
		},
		Tools: ToolsConfig{
			Injector: []string{"npx", "--yes", "postject"},
			Codesign: "codesign",
			Signtool: "signtool",
		},
		Verify: VerifyConfig{
			Timeout: 5 * time.Second,
			Args:    []string{"--version"},
			Banner:  "Welcome to Node.js",
		},
		Signing: SigningConfig{
			Enabled:  true,
			Identity: "-",
		},
	}
}
