package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/SyedUmais05/Java-code-smell-detector/internal/output"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/watch"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Watch for Java file changes and re-detect smells",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Value: watch.DefaultDebounce,
				Usage: "Quiet period before a changed file is analyzed",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Action: runWatchCmd,
	}
}

func runWatchCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(c, cfg)
	defer logger.Sync() //nolint:errcheck // stderr sync errors are not actionable

	absPath, err := filepath.Abs(getPaths(c)[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	// Every change is re-read, so caching buys nothing here.
	svc := newService(cfg, logger, false, 0)
	colored := cfg.Output.Color && !c.Bool("no-color")

	handler := func(ctx context.Context, path string) {
		report, err := svc.AnalyzeFile(ctx, path)
		if err != nil {
			fmt.Fprintln(c.App.Writer, color.RedString("Analysis error: %v", err))
			return
		}
		formatter := output.NewWriterFormatter(output.FormatText, c.App.Writer, colored)
		if err := formatter.Output(output.NewSmellReport(report)); err != nil {
			fmt.Fprintln(c.App.Writer, color.RedString("Render error: %v", err))
		}
	}

	watcher, err := watch.NewWatcher(absPath, cfg, handler,
		watch.WithDebounce(c.Duration("debounce")),
		watch.WithLogger(logger),
		watch.WithOutput(c.App.Writer),
	)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(c.Context); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
