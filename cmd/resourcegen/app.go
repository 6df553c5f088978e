package main

import (
	"github.com/urfave/cli/v2"
)

const (
	outputAll     = "all"
	outputOpenAPI = "openapi"
)

func newApp(r *runner) *cli.App {
	return &cli.App{
		Name:      "resourcegen",
		Usage:     "scaffold admin form, show and grid declarations from a database table",
		UsageText: "resourcegen [--config database.yaml] (--model Post | --table posts) [--mode form]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "connection file (YAML or JSON); DB_* variables are used when omitted",
				EnvVars: []string{"RESOURCEGEN_CONFIG"},
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files loaded before the configuration is read",
				Value: cli.NewStringSlice(".env"),
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "model name resolved in the model catalogue",
			},
			&cli.StringFlag{
				Name:  "models",
				Usage: "directory holding model catalogue files",
				Value: "models",
			},
			&cli.StringFlag{
				Name:  "connection",
				Usage: "connection name, overrides the model's connection",
			},
			&cli.StringFlag{
				Name:    "table",
				Aliases: []string{"t"},
				Usage:   "table to scaffold when no model is given (db.table selects the schema)",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "form, show, grid, all or openapi",
				Value: outputAll,
			},
			&cli.StringFlag{
				Name:  "openapi-format",
				Usage: "yaml or json, used with --mode openapi",
				Value: "yaml",
			},
			&cli.StringFlag{
				Name:  "templates",
				Usage: "directory with form.tpl, show.tpl or grid.tpl overriding the built-in formats",
			},
			&cli.StringFlag{
				Name:  "template-ext",
				Usage: "extension of the files in --templates",
				Value: ".tpl",
			},
			&cli.StringFlag{
				Name:  "line-ending",
				Usage: "crlf or lf",
				Value: "crlf",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file (stdout if empty)",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "prompt for the connection, table and mode when not given",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
				Value: "info",
			},
		},
		Action: r.run,
	}
}
