package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/amaumene/jellyfav/internal/app"
)

var version = "1.0.0"

var errConflictingVerbosity = errors.New("--verbose and --quiet are mutually exclusive")

// runner executes one download pass with the options parsed from the command
// line.
type runner func(ctx context.Context, opts app.Options) error

func main() {
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLI(runApp).RunContext(ctx, os.Args); err != nil {
		log.WithError(err).Error("jellyfav failed")
		stop()
		os.Exit(1)
	}
}

func runApp(ctx context.Context, opts app.Options) error {
	application, err := app.New(opts)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}

func newCLI(run runner) *cli.App {
	// -v belongs to --verbose.
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	return &cli.App{
		Name:    "jellyfav",
		Usage:   "download Jellyfin favorites into a local movies/series tree",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "show what would be downloaded without writing any media file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "print only warnings and errors",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration `FILE`",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "load environment variables from `FILE` (default .env)",
			},
		},
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			opts, err := optionsFrom(c)
			if err != nil {
				return err
			}
			return run(c.Context, opts)
		},
	}
}

func optionsFrom(c *cli.Context) (app.Options, error) {
	if c.Bool("verbose") && c.Bool("quiet") {
		return app.Options{}, errConflictingVerbosity
	}

	return app.Options{
		ConfigFile: c.String("config"),
		EnvFile:    c.String("env-file"),
		DryRun:     c.Bool("dry-run"),
		Verbose:    c.Bool("verbose"),
		Quiet:      c.Bool("quiet"),
	}, nil
}
