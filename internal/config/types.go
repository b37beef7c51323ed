package config

import (
	pipelineconfig "github.com/elskow/seabuild/internal/pipeline/config"
)

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	Env      string                        `mapstructure:"env"`
	Log      LogConfig                     `mapstructure:"log"`
	Pipeline pipelineconfig.PipelineConfig `mapstructure:"pipeline"`
}

// Source tells LoadConfig where to look. An empty File searches the default
// locations and tolerates a missing file.
type Source struct {
	File     string
	LogLevel string // Overrides log.level when set.
}
