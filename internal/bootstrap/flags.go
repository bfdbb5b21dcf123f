// Package bootstrap builds the lazyscm command line and wires its components.
package bootstrap

import (
	urfavecli "github.com/urfave/cli/v3"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via Command.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "workspace",
			Aliases: []string{"w"},
			Usage:   "Directory to open instead of the current one",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=lazyscm.key=value",
		},
		&urfavecli.BoolFlag{
			Name:  "plain",
			Usage: "Disable spinners, colours and the pager",
		},
		&urfavecli.BoolFlag{
			Name:  "no-watch",
			Usage: "Do not watch the workspace for changes",
		},
		&urfavecli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Focus a file so resource actions apply to it",
		},
	}
}
