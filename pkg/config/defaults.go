package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/ccollicutt/fastfile/pkg/source"
)

// Default values for configuration.
const (
	DefaultMaxLineSize  = source.DefaultMaxLineSize
	DefaultPollInterval = source.DefaultPollInterval
	DefaultLevel        = "info"
	MaxLineSizeLimit    = 256 * 1024 * 1024
)

// Environment variable names.
const (
	EnvDebug       = "FASTFILE_DEBUG"
	EnvTrimUTF8    = "FASTFILE_TRIMUTF8"
	EnvMaxLineSize = "FASTFILE_MAX_LINE_SIZE"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			MaxLineSize:        DefaultMaxLineSize,
			ReplaceInvalidUTF8: true,
		},
		Follow: FollowConfig{
			PollInterval: DefaultPollInterval,
		},
		Diagnostics: DiagnosticsConfig{
			Level: DefaultLevel,
		},
		Output: OutputConfig{
			Format: OutputText,
		},
	}
}

// ApplyEnvironmentOverrides applies environment variable overrides to the config.
// Unparseable values are ignored.
func (c *Config) ApplyEnvironmentOverrides() {
	if v := os.Getenv(EnvDebug); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Diagnostics.Enabled = true
			c.Diagnostics.Level = "debug"
		} else if b, err := strconv.ParseBool(v); err == nil {
			c.Diagnostics.Enabled = b
		}
	}

	if v := os.Getenv(EnvTrimUTF8); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.Source.ReplaceInvalidUTF8 = b
		}
	}

	if v := os.Getenv(EnvMaxLineSize); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Source.MaxLineSize = n
		}
	}
}
