package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Video   VideoConfig   `mapstructure:"video"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // json or text
	Output     string `mapstructure:"output"` // stdout, stderr, or file path
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Port    int    `mapstructure:"port"`
}

type FilterConfig struct {
	// Deinterlace mode: discard, mean, blend, bob or linear
	Mode string `mapstructure:"mode"`

	// Output picture pool
	PoolSize       int           `mapstructure:"pool_size"`
	AcquireBackoff time.Duration `mapstructure:"acquire_backoff"` // Sleep between pool polls
}

type VideoConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Chroma string `mapstructure:"chroma"` // I420, IYUV, YV12 or I422
	FPS    int    `mapstructure:"fps"`
}

func Load(configPath string) (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(configPath)

	// Environment variable override
	viper.SetEnvPrefix("DEWEAVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 5)
	viper.SetDefault("logging.max_age", 30)

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")
	viper.SetDefault("metrics.port", 9090)

	// Filter defaults
	viper.SetDefault("filter.mode", "discard")
	viper.SetDefault("filter.pool_size", 8)
	viper.SetDefault("filter.acquire_backoff", "2ms")

	// Video defaults
	viper.SetDefault("video.width", 720)
	viper.SetDefault("video.height", 576)
	viper.SetDefault("video.chroma", "I420")
	viper.SetDefault("video.fps", 25)
}
