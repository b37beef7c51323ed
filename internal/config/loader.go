package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	pipelineconfig "github.com/elskow/seabuild/internal/pipeline/config"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

func LoadConfig(src Source) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SEABUILD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if src.File != "" {
		v.SetConfigFile(src.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	d := pipelineconfig.Default()

	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("log.level", "info")

	v.SetDefault("pipeline.workspace_root", DefaultWorkspaceRoot())
	v.SetDefault("pipeline.cache_dir", DefaultCacheDir())

	v.SetDefault("pipeline.nodejs.dist_url", d.NodeJS.DistURL)
	v.SetDefault("pipeline.nodejs.index_url", d.NodeJS.IndexURL)
	v.SetDefault("pipeline.nodejs.min_version", d.NodeJS.MinVersion)
	v.SetDefault("pipeline.nodejs.max_version", d.NodeJS.MaxVersion)
	v.SetDefault("pipeline.nodejs.preferred_versions", d.NodeJS.PreferredVersions)
	v.SetDefault("pipeline.nodejs.preferred_major", d.NodeJS.PreferredMajor)
	v.SetDefault("pipeline.nodejs.fallback_version", d.NodeJS.FallbackVersion)
	v.SetDefault("pipeline.nodejs.index_timeout", d.NodeJS.IndexTimeout)

	v.SetDefault("pipeline.tools.node", d.Tools.Node)
	v.SetDefault("pipeline.tools.injector", d.Tools.Injector)
	v.SetDefault("pipeline.tools.codesign", d.Tools.Codesign)
	v.SetDefault("pipeline.tools.signtool", d.Tools.Signtool)

	v.SetDefault("pipeline.verify.timeout", d.Verify.Timeout)
	v.SetDefault("pipeline.verify.args", d.Verify.Args)
	v.SetDefault("pipeline.verify.banner", d.Verify.Banner)

	v.SetDefault("pipeline.signing.enabled", d.Signing.Enabled)
	v.SetDefault("pipeline.signing.identity", d.Signing.Identity)
}
