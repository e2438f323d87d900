package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/SyedUmais05/Java-code-smell-detector/internal/cache"
	"github.com/SyedUmais05/Java-code-smell-detector/internal/logging"
	"github.com/SyedUmais05/Java-code-smell-detector/internal/service/analysis"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/config"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "jsmell",
		Usage:   "Java code smell detector",
		Version: version,
		Description: `jsmell parses Java sources and reports code smells from four families:
bloaters, object-orientation abusers, dispensables and couplers.

Each smell comes with a severity and a suggested refactoring.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"JSMELL_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			analyzeCmd(),
			serveCmd(),
			mcpCmd(),
			watchCmd(),
			initCmd(),
			kindsCmd(),
			schemaCmd(),
			cacheCmd(),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		stop()
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// loadConfig reads --config when given, otherwise the discovered config.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

func newLogger(c *cli.Context, cfg *config.Config) *zap.Logger {
	level := cfg.Log.Level
	if c.Bool("verbose") {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(c.App.ErrWriter, "%v, logging disabled\n", err)
		return logging.Nop()
	}
	return logger
}

// newService builds the analysis service. A cache that cannot be opened is
// skipped with a warning.
func newService(cfg *config.Config, logger *zap.Logger, useCache bool, workers int) *analysis.Service {
	opts := []analysis.Option{
		analysis.WithConfig(cfg),
		analysis.WithLogger(logger),
		analysis.WithWorkers(workers),
	}
	if useCache && cfg.Cache.Enabled {
		ch, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
		if err != nil {
			logger.Warn("cache disabled", zap.String("dir", cfg.Cache.Dir), zap.Error(err))
		} else {
			opts = append(opts, analysis.WithCache(ch))
		}
	}
	return analysis.New(opts...)
}
