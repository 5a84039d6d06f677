package config

import (
	"fmt"
)

func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}

	if err := c.Filter.Validate(); err != nil {
		return fmt.Errorf("filter config: %w", err)
	}

	if err := c.Video.Validate(); err != nil {
		return fmt.Errorf("video config: %w", err)
	}

	return nil
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	if l.Format != "json" && l.Format != "text" {
		return fmt.Errorf("invalid log format: %s (must be json or text)", l.Format)
	}

	if l.Output == "" {
		return fmt.Errorf("log output is required")
	}

	return nil
}

func (m *MetricsConfig) Validate() error {
	if !m.Enabled {
		return nil
	}

	if m.Port < 1 || m.Port > 65535 {
		return fmt.Errorf("invalid metrics port: %d", m.Port)
	}

	if m.Path == "" {
		return fmt.Errorf("metrics path is required")
	}

	return nil
}

func (f *FilterConfig) Validate() error {
	// Unknown modes are not rejected here: the filter falls back to discard
	// with a warning, matching the renderer's tolerant startup behavior.
	if f.PoolSize < 2 {
		return fmt.Errorf("pool_size must be at least 2 (double-rate modes need two pictures in flight): %d", f.PoolSize)
	}

	if f.AcquireBackoff <= 0 {
		return fmt.Errorf("acquire_backoff must be positive: %v", f.AcquireBackoff)
	}

	return nil
}

func (v *VideoConfig) Validate() error {
	if v.Width <= 0 || v.Width%2 != 0 {
		return fmt.Errorf("width must be a positive even number: %d", v.Width)
	}

	if v.Height <= 0 || v.Height%2 != 0 {
		return fmt.Errorf("height must be a positive even number: %d", v.Height)
	}

	if v.Chroma == "" {
		return fmt.Errorf("chroma is required")
	}

	if v.FPS <= 0 {
		return fmt.Errorf("fps must be positive: %d", v.FPS)
	}

	return nil
}
