// Package cli implements the parcoords command-line interface.
//
// This package provides commands for rendering parallel-coordinates charts
// from configured datasets, serving the interactive chart page, browsing
// datasets in the terminal, and watching a dataset file for changes. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate an SVG, PNG, or PDF chart for a dataset
//   - serve: Run the HTTP server with the interactive chart page
//   - browse: Interactively pick a dataset and render it
//   - watch: Re-render whenever a dataset file changes
//   - datasets: List the configured datasets
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/coordviz/parcoords/pkg/buildinfo"
	"github.com/coordviz/parcoords/pkg/cache"
	"github.com/coordviz/parcoords/pkg/config"
	"github.com/coordviz/parcoords/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "parcoords"

	// defaultConfigFile is the configuration file looked up in the
	// working directory when --config is not given.
	defaultConfigFile = "parcoords.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		ConfigPath: defaultConfigFile,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "parcoords",
		Short:        "Parcoords renders parallel-coordinates charts",
		Long:         `Parcoords renders multi-dimensional datasets as parallel-coordinates charts, one vertical axis per column and one polyline per record, served interactively or written to SVG, PNG, or PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", defaultConfigFile, "configuration file")

	// Attach the logger to the command context; commands retrieve it with
	// loggerFromContext.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.datasetsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration file behind --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	registry, err := pipeline.RegistryFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(registry, store, nil, c.Logger), nil
}

// newCache picks the cache backend: Redis when configured, the XDG file
// cache otherwise, and NullCache when caching is disabled.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Server.RedisURL != "" {
		return cache.NewRedisCache(ctx, cfg.Server.RedisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/parcoords/).
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

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
