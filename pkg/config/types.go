// Package config provides configuration loading and validation for fastfile.
package config

import (
	"log/slog"
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Source      SourceConfig      `yaml:"source"`
	Follow      FollowConfig      `yaml:"follow"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Output      OutputConfig      `yaml:"output"`
}

// SourceConfig controls how lines are read.
type SourceConfig struct {
	// MaxLineSize is the longest line accepted, in bytes.
	MaxLineSize int `yaml:"max_line_size"`

	// ReplaceInvalidUTF8 replaces invalid UTF-8 sequences with U+FFFD.
	ReplaceInvalidUTF8 bool `yaml:"replace_invalid_utf8"`

	// Pattern is reserved for line filtering and must be empty.
	Pattern string `yaml:"pattern,omitempty"`
}

// FollowConfig controls tail -f style reading.
type FollowConfig struct {
	Enabled bool `yaml:"enabled"`

	// IdleTimeout ends the stream after this long without new data.
	// Zero follows until interrupted.
	IdleTimeout time.Duration `yaml:"idle_timeout,omitempty"`

	// PollInterval is how often the file is re-checked between events.
	PollInterval time.Duration `yaml:"poll_interval,omitempty"`
}

// DiagnosticsConfig controls read tracing.
type DiagnosticsConfig struct {
	Enabled bool `yaml:"enabled"`

	// Level is the log level: debug, info, warn or error.
	Level string `yaml:"level,omitempty"`

	// level is the parsed Level (populated during validation).
	level slog.Level
}

// SlogLevel returns the parsed log level.
func (d *DiagnosticsConfig) SlogLevel() slog.Level {
	return d.level
}

// OutputFormat names a report format.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format OutputFormat `yaml:"format"`
}
