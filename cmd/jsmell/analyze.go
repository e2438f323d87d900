package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/SyedUmais05/Java-code-smell-detector/internal/output"
	"github.com/SyedUmais05/Java-code-smell-detector/internal/progress"
	"github.com/SyedUmais05/Java-code-smell-detector/internal/scanner"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/analyzer/smells"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/config"
)

const stdinPath = "<stdin>"

// thresholdFlags maps flag names to the threshold they override.
var thresholdFlags = []struct {
	name  string
	usage string
	field func(*smells.Thresholds) *int
}{
	{"long-method", "Max estimated method length in lines", func(t *smells.Thresholds) *int { return &t.LongMethod }},
	{"large-class-methods", "Max methods per class", func(t *smells.Thresholds) *int { return &t.LargeClassMethods }},
	{"long-parameter-list", "Max parameters per method", func(t *smells.Thresholds) *int { return &t.LongParameterList }},
	{"switch-cases", "Max case groups per switch", func(t *smells.Thresholds) *int { return &t.SwitchCases }},
	{"duplicate-block", "Duplicate window size in non-blank lines", func(t *smells.Thresholds) *int { return &t.DuplicateBlock }},
	{"data-clump-params", "Min parameters forming a data clump", func(t *smells.Thresholds) *int { return &t.DataClumpParams }},
	{"message-chain-length", "Min chained calls per line", func(t *smells.Thresholds) *int { return &t.MessageChainLength }},
	{"lazy-class-methods", "Classes with fewer non-accessor methods are lazy", func(t *smells.Thresholds) *int { return &t.LazyClassMethods }},
}

// smellsFoundError is returned when --fail-on is met.
type smellsFoundError struct {
	severity smells.Severity
	files    int
}

func (e *smellsFoundError) Error() string {
	return fmt.Sprintf("%d file(s) have smells of %s severity or higher", e.files, e.severity)
}

func analyzeCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: " + strings.Join(output.Formats(), ", ") + " (default from config)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to file",
		},
		&cli.StringFlag{
			Name:  "fail-on",
			Usage: "Exit with status 1 when a smell of this severity or higher is found: low, medium, high",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "Disable caching",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored text output",
		},
		&cli.Int64Flag{
			Name:  "max-size",
			Usage: "Skip files larger than this many bytes (0 disables)",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Concurrent workers (0 uses twice the CPU count)",
		},
	}
	for _, tf := range thresholdFlags {
		flags = append(flags, &cli.IntFlag{Name: tf.name, Usage: tf.usage})
	}

	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Detect code smells in Java files",
		ArgsUsage: "[path...] (use - to read one compilation unit from stdin)",
		Flags:     flags,
		Action:    runAnalyzeCmd,
	}
}

// applyThresholdFlags overrides config thresholds with explicitly set flags.
func applyThresholdFlags(c *cli.Context, cfg *config.Config) error {
	for _, tf := range thresholdFlags {
		if c.IsSet(tf.name) {
			*tf.field(&cfg.Thresholds) = c.Int(tf.name)
		}
	}
	return cfg.Thresholds.Validate()
}

func runAnalyzeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := applyThresholdFlags(c, cfg); err != nil {
		return err
	}

	var failOn smells.Severity
	if s := c.String("fail-on"); s != "" {
		if failOn, err = smells.ParseSeverity(s); err != nil {
			return err
		}
	}

	format := output.ParseFormat(cfg.Output.Format)
	if c.IsSet("format") {
		format = output.ParseFormat(c.String("format"))
	}

	logger := newLogger(c, cfg)
	defer logger.Sync() //nolint:errcheck // stderr sync errors are not actionable

	svc := newService(cfg, logger, !c.Bool("no-cache"), c.Int("workers"))
	ctx := c.Context

	var reports []output.FileReport
	paths := getPaths(c)
	if len(paths) == 1 && paths[0] == "-" {
		src, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		reports = append(reports, output.NewFileReport(stdinPath, svc.AnalyzeSource(ctx, src)))
	} else {
		files, err := scanner.NewScanner(cfg).ScanPaths(paths)
		if err != nil {
			return err
		}
		files, skipped := scanner.FilterBySize(files, c.Int64("max-size"))
		if skipped > 0 {
			logger.Info("skipped large files", zap.Int("count", skipped), zap.Int64("max_size", c.Int64("max-size")))
		}
		if len(files) == 0 {
			fmt.Fprintln(c.App.ErrWriter, color.YellowString("No Java files found"))
			return nil
		}

		var onProgress func()
		var tracker *progress.Tracker
		if len(files) > 1 {
			tracker = progress.NewTracker("Detecting smells...", len(files), progress.WithWriter(c.App.ErrWriter))
			onProgress = tracker.Tick
		}
		reports, err = svc.AnalyzeFiles(ctx, files, onProgress)
		if tracker != nil {
			if err != nil {
				tracker.FinishError(err)
			} else {
				tracker.FinishSuccess()
			}
		}
		if err != nil {
			return err
		}
	}

	colored := cfg.Output.Color && !c.Bool("no-color")
	if err := writeReport(c, format, colored, output.NewSmellReport(reports...)); err != nil {
		return err
	}

	status := output.NewWriterFormatter(output.FormatText, c.App.ErrWriter, colored)
	unparsed := 0
	for _, r := range reports {
		if r.Error != "" {
			unparsed++
		}
	}
	if unparsed > 0 {
		status.Warning("%d of %d file(s) could not be analyzed", unparsed, len(reports))
	}
	if path := c.String("output"); path != "" {
		status.Success("Report written to %s", path)
	}

	if failOn != "" {
		failing := 0
		for _, r := range reports {
			if r.Report().HasSeverityAtLeast(failOn) {
				failing++
			}
		}
		if failing > 0 {
			return &smellsFoundError{severity: failOn, files: failing}
		}
	}
	return nil
}

// writeReport renders data to --output when set, otherwise to the app writer.
func writeReport(c *cli.Context, format output.Format, colored bool, data output.Renderable) error {
	var formatter *output.Formatter
	if path := c.String("output"); path != "" {
		f, err := output.NewFormatter(format, path, false)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		formatter = f
	} else {
		formatter = output.NewWriterFormatter(format, c.App.Writer, colored)
	}
	defer formatter.Close()

	return formatter.Output(data)
}
