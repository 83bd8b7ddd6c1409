package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kle/pkg/config"
	"github.com/matzehuels/kle/pkg/observability"
)

// setup loads the config file, applies the log level and registers the
// log-backed observability hooks. It runs before every subcommand.
//
// Precedence for the log level:
//   - --verbose forces debug
//   - otherwise log_level from the config file
//   - otherwise info
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	level := cfg.Level()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	hooks := newLogHooks(c.Logger)
	observability.SetDecodeHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}
