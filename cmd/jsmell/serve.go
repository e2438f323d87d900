package main

import (
	"github.com/urfave/cli/v2"

	"github.com/SyedUmais05/Java-code-smell-detector/internal/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP analysis API",
		Description: `Serves POST /api/analyze (and POST /analyze) taking {"sourceCode": "..."}
and returning a smell report. GET / and GET /health report liveness.

The listen address, line limit and allowed CORS origins come from the
[server] section of the config file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default from config, :8000)",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable caching",
			},
		},
		Action: runServeCmd,
	}
}

func runServeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(c, cfg)
	defer logger.Sync() //nolint:errcheck // stderr sync errors are not actionable

	svc := newService(cfg, logger, !c.Bool("no-cache"), 0)
	return server.New(svc, server.WithLogger(logger)).Run(c.Context, c.String("addr"))
}
