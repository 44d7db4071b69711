package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nishant32400/CrewStandby/internal/config"
	"github.com/nishant32400/CrewStandby/pkg/contracts"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		slog.Error("reconciler failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newApp builds the CLI. Command output goes to stdout, usage errors to stderr.
func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:        "reconciler",
		Usage:       "reconcile pairing starts against standby activations",
		Description: fmt.Sprintf("%s counts pairing starts and standby activations per date, station, duty window and rank.", config.AppName),
		Version:     contracts.Version,
		Writer:      stdout,
		ErrWriter:   stderr,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{config.EnvPrefix + "_CONFIG"},
			},
		},

		Commands: []*cli.Command{
			runCommand(),
			validateCommand(),
			windowsCommand(),
		},
	}
}
