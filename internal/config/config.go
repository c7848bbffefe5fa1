package config

import (
	"time"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Skills    SkillsConfig    `mapstructure:"skills"`
	Transform TransformConfig `mapstructure:"transform"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SkillsConfig locates the per-platform field-semantics files. Root is the
// workspace directory containing skills/<platform>/field-semantics.yaml.
type SkillsConfig struct {
	Root string `mapstructure:"root"`
}

type TransformConfig struct {
	MaxEvents     int `mapstructure:"max_events"`
	TableRowLimit int `mapstructure:"table_row_limit"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

func Load(configFile string) (*Config, error) {
	return LoadConfig(configFile)
}
