package app

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/amaumene/jellyfav/internal/clients"
	"github.com/amaumene/jellyfav/internal/config"
	"github.com/amaumene/jellyfav/internal/naming"
	"github.com/amaumene/jellyfav/internal/service"
	"github.com/amaumene/jellyfav/internal/storage"
)

type Options struct {
	ConfigFile string
	EnvFile    string
	DryRun     bool
	Verbose    bool
	Quiet      bool

	// Stdout receives console output; os.Stdout when nil.
	Stdout   io.Writer
	// Prompter asks for missing credentials; a terminal prompter when nil.
	Prompter Prompter
}

type App struct {
	cfg          *config.Config
	console      *Console
	prompter     Prompter
	orchestrator *Orchestrator
}

func New(opts Options) (*App, error) {
	cfg, err := config.Load(config.Options{File: opts.ConfigFile, EnvFile: opts.EnvFile})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	ConfigureLogging(cfg.LogFormat, opts.Verbose, opts.Quiet)

	return NewWithConfig(cfg, opts)
}

// NewWithConfig wires the application around an already loaded configuration.
func NewWithConfig(cfg *config.Config, opts Options) (*App, error) {
	client, err := initJellyfinClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing jellyfin client: %w", err)
	}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	prompter := opts.Prompter
	if prompter == nil {
		prompter = NewTerminalPrompter()
	}

	app := &App{
		cfg:      cfg,
		console:  NewConsole(out, opts.Quiet),
		prompter: prompter,
	}
	app.wireServices(client, opts.DryRun)

	return app, nil
}

func initJellyfinClient(cfg *config.Config) (*clients.JellyfinClient, error) {
	return clients.NewJellyfinClient(clients.ClientConfig{
		BaseURL:    cfg.ServerURL,
		ClientName: cfg.ClientName,
		DeviceName: cfg.DeviceName,
		DeviceID:   cfg.DeviceID,
		Version:    cfg.ClientVersion,
	})
}

func (a *App) wireServices(client *clients.JellyfinClient, preview bool) {
	files := storage.NewFileStore()
	layout := naming.NewLayout(a.cfg.MoviesDir, a.cfg.SeriesDir)

	planner := service.NewPlanner(client, layout, files)
	downloader := service.NewDownloader(client, files, service.DownloaderOptions{
		Preview:  preview,
		Reporter: a.console.Report,
	})

	a.orchestrator = NewOrchestrator(client, planner, downloader, files, layout, a.console, preview)
}

// Run performs one pass and returns the first fatal error, or an error
// summarizing failed transfers.
func (a *App) Run(ctx context.Context) error {
	a.console.Banner()

	creds, err := resolveCredentials(a.cfg, a.prompter)
	if err != nil {
		return fmt.Errorf("reading credentials: %w", err)
	}

	report, err := a.orchestrator.Run(ctx, creds)
	a.logReport(report, err)
	return err
}

func (a *App) logReport(report Report, err error) {
	entry := log.WithFields(log.Fields{
		"component": "app",
		"planned":   report.Summary.Total,
		"completed": report.Completed,
		"skipped":   report.Skipped,
		"previewed": report.Previewed,
		"failed":    report.Failed,
	})
	if err != nil {
		entry.WithError(err).Debug("run finished with errors")
		return
	}
	entry.Info("run finished")
}

// ConfigureLogging sets the global logrus logger. Logs go to stderr so that
// stdout stays reserved for console output.
func ConfigureLogging(format string, verbose, quiet bool) {
	log.SetOutput(os.Stderr)

	switch {
	case verbose:
		log.SetLevel(log.DebugLevel)
	case quiet:
		log.SetLevel(log.WarnLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
