package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"

	"github.com/SyedUmais05/Java-code-smell-detector/internal/output"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/config"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a new jsmell configuration file",
		Description: `Creates a new jsmell.toml configuration file in the current directory
with the default thresholds. Use --output to specify a different location.

Examples:
  jsmell init                        # Creates jsmell.toml in current directory
  jsmell init -o .jsmell/jsmell.toml # Creates config in .jsmell directory
  jsmell init --force                # Overwrite existing config file`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "jsmell.toml",
				Usage:   "Output file path",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite existing config file",
			},
		},
		Action: runInitCmd,
	}
}

func runInitCmd(c *cli.Context) error {
	outputPath := c.String("output")

	if _, err := os.Stat(outputPath); err == nil && !c.Bool("force") {
		return fmt.Errorf("config file %q already exists (use --force to overwrite)", outputPath)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	content, err := generateDefaultConfig()
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	status := output.NewWriterFormatter(output.FormatText, c.App.Writer, true)
	status.Success("Created %s", outputPath)
	status.Info("Edit this file to customize thresholds and exclusions.")
	return nil
}

func generateDefaultConfig() (string, error) {
	content, err := toml.Marshal(config.DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to TOML: %w", err)
	}

	var buf strings.Builder
	buf.WriteString("# jsmell configuration\n")
	buf.WriteString("# Environment overrides use JSMELL_<SECTION>__<KEY>, e.g. JSMELL_THRESHOLDS__LONG_METHOD=60\n\n")
	buf.Write(content)

	return buf.String(), nil
}
