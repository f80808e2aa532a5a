package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/fastfile/pkg/source"
)

// ErrPatternUnsupported is returned when a line filter pattern is configured.
// The pattern argument is reserved; no filtering semantics are defined.
var ErrPatternUnsupported = errors.New("pattern filtering is not supported")

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it is set and otherwise returns the validated
// defaults with environment overrides applied.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	cfg.ApplyEnvironmentOverrides()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and fills in defaults.
func Validate(cfg *Config) error {
	if err := validateSource(&cfg.Source); err != nil {
		return fmt.Errorf("source: %w", err)
	}

	if err := validateFollow(&cfg.Follow); err != nil {
		return fmt.Errorf("follow: %w", err)
	}

	if err := validateDiagnostics(&cfg.Diagnostics); err != nil {
		return fmt.Errorf("diagnostics: %w", err)
	}

	switch cfg.Output.Format {
	case OutputText, OutputJSON:
	case "":
		cfg.Output.Format = OutputText
	default:
		return fmt.Errorf("output: invalid format %q (must be text or json)", cfg.Output.Format)
	}

	return nil
}

func validateSource(sc *SourceConfig) error {
	if sc.Pattern != "" {
		return fmt.Errorf("pattern %q: %w", sc.Pattern, ErrPatternUnsupported)
	}

	if sc.MaxLineSize == 0 {
		sc.MaxLineSize = DefaultMaxLineSize
	}
	if sc.MaxLineSize < 0 {
		return errors.New("max_line_size must be positive")
	}
	if sc.MaxLineSize > MaxLineSizeLimit {
		return fmt.Errorf("max_line_size cannot exceed %d bytes", MaxLineSizeLimit)
	}

	return nil
}

func validateFollow(fc *FollowConfig) error {
	if fc.IdleTimeout < 0 {
		return errors.New("idle_timeout must not be negative")
	}

	if fc.PollInterval < 0 {
		return errors.New("poll_interval must not be negative")
	}
	if fc.PollInterval == 0 {
		fc.PollInterval = DefaultPollInterval
	}

	return nil
}

func validateDiagnostics(dc *DiagnosticsConfig) error {
	if dc.Level == "" {
		dc.Level = DefaultLevel
	}

	if err := dc.level.UnmarshalText([]byte(strings.ToLower(dc.Level))); err != nil {
		return fmt.Errorf("invalid level %q (must be debug, info, warn, or error)", dc.Level)
	}

	return nil
}

// SourceOptions converts the source and follow settings into source options.
func (c *Config) SourceOptions() []source.Option {
	opts := []source.Option{
		source.WithMaxLineSize(c.Source.MaxLineSize),
		source.WithReplaceInvalidUTF8(c.Source.ReplaceInvalidUTF8),
	}
	if c.Follow.Enabled {
		opts = append(opts,
			source.WithIdleTimeout(c.Follow.IdleTimeout),
			source.WithPollInterval(c.Follow.PollInterval),
		)
	}
	return opts
}

// NewLogger builds the diagnostics logger described by the config.
// Returns nil when diagnostics are disabled.
func (c *Config) NewLogger() *slog.Logger {
	if !c.Diagnostics.Enabled {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: c.Diagnostics.SlogLevel(),
	}))
}
