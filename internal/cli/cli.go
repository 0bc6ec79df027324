package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/buildinfo"
	"github.com/matzehuels/lifeline/pkg/cache"
	"github.com/matzehuels/lifeline/pkg/config"
	"github.com/matzehuels/lifeline/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "lifeline"

// Log levels accepted by [New] and [CLI.SetLogLevel].
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// out receives all user-facing output. Tests swap it for a buffer.
var out io.Writer = os.Stdout

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is loaded when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Lifeline lays out and renders sequence diagrams",
		Long: `Lifeline assigns coordinates to sequence diagrams: lifelines, messages,
execution bars, message labels and comments. Laid-out diagrams can be
rendered to SVG, PNG, PDF or Graphviz DOT, or served over HTTP.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug output")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $"+config.EnvConfig+" or ~/.config/"+appName+"/"+config.FileName+")")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, path, err := config.LoadDefault(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache. A cache
// that cannot be opened is logged and replaced by a null cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.openCache(ctx, noCache), c.keyer(), c.Logger)
}

func (c *CLI) openCache(ctx context.Context, noCache bool) cache.Cache {
	target := c.cfg.Cache.CacheTarget()
	if noCache {
		target = "none"
	}
	store, err := cache.Open(ctx, target)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "target", target, "error", err)
		return cache.NewNullCache()
	}
	return store
}

func (c *CLI) keyer() cache.Keyer {
	if ns := c.cfg.Cache.Namespace; ns != "" {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), ns)
	}
	return nil
}

// cacheDir returns the directory of the file cache, or "" when the cache is
// disabled or not file-backed.
func (c *CLI) cacheDir() string {
	target := c.cfg.Cache.CacheTarget()
	switch {
	case target == "none", target == "":
		return ""
	case strings.Contains(target, "://"):
		return ""
	}
	return target
}
