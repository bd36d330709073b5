package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/buildinfo"
	"github.com/matzehuels/bstviz/pkg/cache"
	"github.com/matzehuels/bstviz/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "bstviz"

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

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "bstviz steps through binary search tree operations",
		Long:         `bstviz builds binary search trees from value lists, lays them out, and renders them as SVG, PNG, JSON, YAML or DOT. It can also step through insertions one comparison at a time in the terminal or over HTTP.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/bstviz/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.traverseCommand())
	root.AddCommand(c.stepCommand())
	root.AddCommand(c.randomCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerFlagCompletions(root)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Get().Version)
	r := pipeline.NewRunner(c.newCache(ctx, noCache), keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL
	return r
}

// newCache opens the configured cache backend. Backends that cannot be
// reached degrade to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	cfg := c.Config.Cache
	if noCache {
		return cache.Disabled("--no-cache")
	}
	if cfg.Backend == backendNone {
		return cache.Disabled("backend is none")
	}

	if cfg.Backend == backendRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			if errors.Is(err, cache.ErrUnavailable) {
				c.Logger.Warn("redis cache unavailable, caching disabled", "addr", cfg.RedisAddr, "error", err)
			} else {
				c.Logger.Warn("redis cache failed, caching disabled", "error", err)
			}
			return cache.Disabled("redis at " + cfg.RedisAddr + " unavailable")
		}
		return rc
	}

	dir := cfg.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.Disabled("no cache directory")
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "dir", dir, "error", err)
		return cache.Disabled(dir + " not writable")
	}
	return fc
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for f := range strings.SplitSeq(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// inputFromArgs joins positional arguments into the comma-separated form,
// so both `render 5 3 8` and `render "5, 3, 8"` work.
func inputFromArgs(args []string) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		a = strings.Trim(strings.TrimSpace(a), ",")
		if a != "" {
			parts = append(parts, a)
		}
	}
	return strings.Join(parts, ", ")
}
