// Package cli implements the arbor command-line interface.
//
// This package provides commands for computing family-tree layouts from
// member lists, rendering them as diagrams, browsing members, and serving
// the layout API. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute canvas positions for a family tree
//   - render: Generate JSON, DOT, SVG, or PNG output from a layout
//   - members: List or interactively browse family members
//   - serve: Run the layout HTTP API
//   - cache: Manage the local layout cache
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arborgraph/arbor/pkg/buildinfo"
	"github.com/arborgraph/arbor/pkg/cache"
	"github.com/arborgraph/arbor/pkg/errors"
	"github.com/arborgraph/arbor/pkg/pipeline"
	"github.com/arborgraph/arbor/pkg/source"
)

// appName is the application name used for directories and display.
const appName = "arbor"

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
	Config Config
}

// New creates a new CLI instance with a default logger and the user's
// config file applied (missing config files are fine).
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	cfg, err := LoadConfig(configPath())
	if err != nil {
		c.Logger.Warn("ignoring config file", "error", err)
		cfg = DefaultConfig()
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "arbor",
		Short:        "Arbor lays out family trees for the ancestry canvas",
		Long:         `Arbor is a CLI tool for computing family-tree layouts: it reads a flat list of family members, arranges couples, siblings, and generations into non-overlapping positions, and emits node and edge data for the pan/zoom canvas.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.membersCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	back, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(back, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == CacheBackendNone {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == CacheBackendRedis {
		return cache.NewRedisCache(context.Background(), cache.RedisConfig{
			Addr:     c.Config.Cache.Redis.Addr,
			Password: c.Config.Cache.Redis.Password,
			DB:       c.Config.Cache.Redis.DB,
		})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Source Factory
// =============================================================================

// newSource builds a member source. An explicit file path wins over the
// config file; with neither, an error tells the user what to configure.
func (c *CLI) newSource(ctx context.Context, path string) (source.Source, error) {
	if path != "" {
		return source.NewFileSource(path), nil
	}

	switch c.Config.Source.Type {
	case SourceTypeFile:
		if c.Config.Source.Path == "" {
			break
		}
		return source.NewFileSource(c.Config.Source.Path), nil
	case SourceTypeREST:
		return source.NewRESTSource(c.Config.Source.URL, nil), nil
	case SourceTypeMongo:
		return source.NewMongoSource(ctx, source.MongoConfig{
			URI:        c.Config.Source.Mongo.URI,
			Database:   c.Config.Source.Mongo.Database,
			Collection: c.Config.Source.Mongo.Collection,
		})
	}

	return nil, errors.New(errors.ErrCodeInvalidConfig,
		"no member source: pass a members.json file or configure one in %s", configPath())
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/arbor/).
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

// configPath returns the config file path using XDG standard
// (~/.config/arbor/config.toml).
func configPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}
