// Package cli implements the citegraph command-line interface.
//
// This package provides commands for turning citation facts into diagrams,
// inspecting the communities of a graph, and serving the pipeline over HTTP.
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Generate TikZ, DOT, SVG, PDF, PNG or JSON from facts files
//   - stats: Print node, edge and per-community counts
//   - browse: Explore communities and their most central members interactively
//   - serve: Run the HTTP API
//   - cache: Inspect and clear the layout cache
//
// # Configuration
//
// Every command reads an optional TOML config file (--config, or
// config.toml under the user config directory). Flags override it.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and --quiet (-q)
// to keep only warnings. Each rendered input logs through a child logger
// tagged with its file.
//
// # Exit Status
//
// [ExitCode] maps errors to the process status: 2 for bad input or options,
// 130 after an interrupt, 1 otherwise.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/isplab/citegraph/pkg/buildinfo"
	"github.com/isplab/citegraph/pkg/cache"
	"github.com/isplab/citegraph/pkg/config"
	"github.com/isplab/citegraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "citegraph"
)

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

	level      log.Level
	verbose    bool
	quiet      bool
	configPath string
	config     *config.Config
	stdin      io.Reader
}

// New creates a new CLI instance logging to w at level until the verbosity
// flags say otherwise.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		level:  level,
		stdin:  os.Stdin,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Citegraph draws citation graphs grouped by community",
		Long:          `Citegraph groups the papers of a citation graph into communities, picks the most central paper of each, lays the graph out and emits a TikZ picture ready for LaTeX.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.Logger.SetLevel(logLevel(c.level, c.verbose, c.quiet))
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/citegraph/config.toml)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&c.quiet, "quiet", "q", false, "log warnings and errors only")

	// Register all subcommands
	for _, cmd := range []*cobra.Command{c.renderCommand(), c.statsCommand(), c.browseCommand()} {
		registerFlagCompletions(cmd)
		root.AddCommand(cmd)
	}
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cfg returns the loaded config, or an empty one before PersistentPreRunE ran.
func (c *CLI) cfg() *config.Config {
	if c.config == nil {
		return &config.Config{}
	}
	return c.config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	// Entries from another release may come from different algorithms
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	runner.TTL = c.cfg().Cache.TTL.Duration
	return runner, nil
}

// newCache picks the cache backend: none, Redis when configured, otherwise
// the file cache under cacheDir.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.cfg().Cache
	if noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{URL: cfg.RedisURL, Prefix: appName + ":"})
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the XDG
// standard (~/.cache/citegraph/).
func (c *CLI) cacheDir() (string, error) {
	if dir := c.cfg().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so the config file or pipeline default applies.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
