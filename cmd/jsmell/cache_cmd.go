package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/SyedUmais05/Java-code-smell-detector/internal/cache"
	"github.com/SyedUmais05/Java-code-smell-detector/internal/output"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/config"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the report cache",
		Subcommands: []*cli.Command{
			{
				Name:  "stats",
				Usage: "Show the number, size and age of cached reports",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: " + strings.Join(output.Formats(), ", "),
					},
				},
				Action: runCacheStats,
			},
			{
				Name:  "clear",
				Usage: "Remove every cached report",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output"},
				},
				Action: runCacheClear,
			},
		},
	}
}

// openCache opens the configured cache directory, or returns nil when caching
// is disabled.
func openCache(c *cli.Context) (*cache.Cache, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Cache.Enabled {
		return nil, cfg, nil
	}
	ch, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
	if err != nil {
		return nil, nil, err
	}
	return ch, cfg, nil
}

func runCacheStats(c *cli.Context) error {
	ch, cfg, err := openCache(c)
	if err != nil {
		return err
	}
	formatter := output.NewWriterFormatter(output.ParseFormat(c.String("format")), c.App.Writer, cfg.Output.Color)
	if ch == nil {
		formatter.Warning("cache is disabled in config")
		return nil
	}

	stats, err := ch.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read cache %s: %w", cfg.Cache.Dir, err)
	}
	rows := [][]string{
		{"Directory", cfg.Cache.Dir},
		{"Entries", strconv.Itoa(stats.Entries)},
		{"Size (bytes)", strconv.FormatInt(stats.TotalSize, 10)},
		{"Oldest", stats.OldestAge.Round(time.Second).String()},
		{"Newest", stats.NewestAge.Round(time.Second).String()},
	}
	return formatter.Output(output.NewTable("Cache", []string{"Metric", "Value"}, rows, nil, stats))
}

func runCacheClear(c *cli.Context) error {
	ch, cfg, err := openCache(c)
	if err != nil {
		return err
	}
	status := output.NewWriterFormatter(output.FormatText, c.App.Writer, cfg.Output.Color && !c.Bool("no-color"))
	if ch == nil {
		status.Warning("cache is disabled in config")
		return nil
	}
	if err := ch.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache %s: %w", cfg.Cache.Dir, err)
	}
	status.Success("Cleared cache at %s", cfg.Cache.Dir)
	return nil
}
