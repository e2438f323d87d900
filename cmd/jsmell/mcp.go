package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/SyedUmais05/Java-code-smell-detector/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes jsmell's smell
detection as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "jsmell": {
        "command": "jsmell",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze_smells     Code smells in Java source or files
  - list_smell_kinds   Recognised smell kinds, families and refactorings`,
		Action: runMCPCmd,
		Subcommands: []*cli.Command{
			{
				Name:   "manifest",
				Usage:  "Print the MCP registry manifest (server.json)",
				Action: runMCPManifestCmd,
			},
		},
	}
}

func runMCPCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(c, cfg)
	defer logger.Sync() //nolint:errcheck // stderr sync errors are not actionable

	svc := newService(cfg, logger, true, 0)
	server := mcpserver.NewServer(version, mcpserver.WithService(svc), mcpserver.WithLogger(logger))
	return server.Run(c.Context)
}

func runMCPManifestCmd(c *cli.Context) error {
	data, err := mcpserver.GenerateManifest(version)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(data))
	return nil
}
