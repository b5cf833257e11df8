package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/umlgraph/pkg/buildinfo"
	"github.com/matzehuels/umlgraph/pkg/cache"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
	"github.com/matzehuels/umlgraph/pkg/plantuml"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "umlgraph"

	// redisPrefix namespaces umlgraph keys in a shared Redis.
	redisPrefix = appName + ":"
)

// Environment variables read by the CLI. Flags take precedence.
const (
	envPlantUMLServer = "UMLGRAPH_PLANTUML_SERVER"
	envRedisAddr      = "UMLGRAPH_REDIS_ADDR"
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

	// Out receives command output; nil means os.Stdout.
	Out io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "umlgraph turns class relationship descriptions into UML diagrams",
		Long: `umlgraph builds UML class diagrams from a description of inheritance,
associations, aggregations and methods, or from Go and Python source code.

Diagrams are emitted as PlantUML text, rendered through a PlantUML server or
executable, or laid out with Graphviz as DOT, SVG, PNG, PDF or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.plantumlCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// out returns the command output writer.
func (c *CLI) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags are shared by every command that renders.
type cacheFlags struct {
	noCache bool
	refresh bool
	redis   string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached renderings")
	cmd.Flags().StringVar(&f.redis, "redis", os.Getenv(envRedisAddr), "cache in Redis at host:port instead of on disk (env "+envRedisAddr+")")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache picks the cache backend. An unusable disk cache disables caching
// rather than failing the command; an unreachable Redis is an error.
func (c *CLI) newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.redis != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: f.redis, Prefix: redisPrefix})
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// newRenderer returns the PlantUML renderer selected by flags.
func newRenderer(local bool, executable, server string) (plantuml.Renderer, error) {
	if local {
		return &plantuml.Local{Executable: executable}, nil
	}
	if server == "" {
		server = os.Getenv(envPlantUMLServer)
	}
	return plantuml.NewServer(server)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/umlgraph/).
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
