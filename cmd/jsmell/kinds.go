package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/SyedUmais05/Java-code-smell-detector/internal/output"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/analyzer/smells"
)

func kindsCmd() *cli.Command {
	return &cli.Command{
		Name:  "kinds",
		Usage: "List recognised smell kinds with their family and refactoring",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: " + strings.Join(output.Formats(), ", "),
			},
			&cli.StringFlag{
				Name:  "family",
				Usage: "Only list one family: bloaters, oo_abusers, dispensables, couplers",
			},
		},
		Action: runKindsCmd,
	}
}

func runKindsCmd(c *cli.Context) error {
	catalog := output.NewKindCatalog()
	if name := c.String("family"); name != "" {
		family := smells.Family(strings.ToLower(name))
		var kinds []smells.KindInfo
		for _, k := range catalog.Kinds {
			if k.Family == family {
				kinds = append(kinds, k)
			}
		}
		if len(kinds) == 0 {
			return fmt.Errorf("unknown family %q", name)
		}
		catalog.Kinds = kinds
	}

	formatter := output.NewWriterFormatter(output.ParseFormat(c.String("format")), c.App.Writer, true)
	return formatter.Output(catalog)
}

func schemaCmd() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON Schema of a single-file smell report",
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, smells.ReportSchema)
			return nil
		},
	}
}
