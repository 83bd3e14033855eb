package cli

import (
	"github.com/mrz1836/seedscan/internal/config"
	"github.com/mrz1836/seedscan/internal/output"
)

// CommandContext holds dependencies for CLI commands.
type CommandContext struct {
	Cfg *config.Config
	Log *config.Logger
	Fmt *output.Formatter

	// ConfigPath is the file the configuration was read from.
	ConfigPath string

	// ConfigErr is the load error when Cfg fell back to defaults.
	ConfigErr error
}

// NewCommandContext creates a context with the given dependencies.
func NewCommandContext(cfg *config.Config, logger *config.Logger, formatter *output.Formatter) *CommandContext {
	return &CommandContext{
		Cfg: cfg,
		Log: logger,
		Fmt: formatter,
	}
}

// requireConfig returns the configuration, or the error that prevented loading it.
func (c *CommandContext) requireConfig() (*config.Config, error) {
	if c.ConfigErr != nil {
		return nil, c.ConfigErr
	}
	return c.Cfg, nil
}
