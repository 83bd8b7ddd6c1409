// Package cli implements the kle command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kle/pkg/buildinfo"
	"github.com/matzehuels/kle/pkg/cache"
	"github.com/matzehuels/kle/pkg/config"
	"github.com/matzehuels/kle/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "kle"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs. Flags override it.
	Config     *config.Config
	configPath string
	verbose    bool

	in     io.Reader
	out    io.Writer
	status io.Writer // spinner and progress lines
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		in:     os.Stdin,
		out:    os.Stdout,
		status: os.Stderr,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output (stdout by default).
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// SetInput replaces stdin for documents read from "-".
func (c *CLI) SetInput(r io.Reader) {
	c.in = r
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "kle decodes keyboard-layout-editor documents",
		Long: `kle decodes raw keyboard-layout-editor JSON into a normalized key list with
absolute positions, sizes, rotation, colors and legends placed in their
twelve slots.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/kle/config.toml)")

	// Register all subcommands
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// openCache opens the configured backend. A remote backend that cannot be
// reached degrades to no caching rather than failing the command.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		dir = ""
	}
	cfg := c.Config.CacheConfig(dir)
	if cfg.Backend == cache.BackendFile && cfg.Dir == "" {
		return cache.NewNullCache(), nil
	}
	cc, err := cache.Open(ctx, cfg)
	if err != nil {
		if cfg.Backend == cache.BackendRedis || cfg.Backend == cache.BackendMongo {
			c.Logger.Warn("cache unavailable, continuing without it", "backend", cfg.Backend, "error", err)
			return cache.NewNullCache(), nil
		}
		return nil, err
	}
	return cc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/kle/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions returns options seeded from the config file.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Format:      c.Config.Format,
		EditorCarry: c.Config.EditorCarry,
		TTL:         c.Config.Cache.TTL,
		Logger:      c.Logger,
	}
}
