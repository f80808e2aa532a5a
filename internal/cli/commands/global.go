package commands

import (
	"context"
	"fmt"

	"github.com/ccollicutt/fastfile/pkg/config"
)

// GlobalOptions holds the flags shared by every command.
type GlobalOptions struct {
	ConfigFile string
	Debug      bool
}

// loadConfig loads the config file, or the defaults when none was given, and
// applies --debug on top.
func (g *GlobalOptions) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(ctx, g.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if g.Debug {
		cfg.Diagnostics.Enabled = true
		cfg.Diagnostics.Level = "debug"
		if err := config.Validate(cfg); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	return cfg, nil
}
