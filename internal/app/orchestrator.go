package app

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/amaumene/jellyfav/internal/domain"
	"github.com/amaumene/jellyfav/internal/naming"
	"github.com/amaumene/jellyfav/internal/service"
)

type dirEnsurer interface {
	EnsureDir(dir string) error
}

// Report is the outcome of one run.
type Report struct {
	Summary   service.Summary
	Completed int
	Skipped   int
	Previewed int
	Failed    int
}

type Orchestrator struct {
	server     domain.MediaServer
	planner    *service.Planner
	downloader *service.Downloader
	dirs       dirEnsurer
	layout     naming.Layout
	console    *Console
	preview    bool
}

func NewOrchestrator(server domain.MediaServer, planner *service.Planner, downloader *service.Downloader, dirs dirEnsurer, layout naming.Layout, console *Console, preview bool) *Orchestrator {
	return &Orchestrator{
		server:     server,
		planner:    planner,
		downloader: downloader,
		dirs:       dirs,
		layout:     layout,
		console:    console,
		preview:    preview,
	}
}

// Run executes one complete pass. Authentication and catalog failures abort
// the run; a failed transfer is recorded and the remaining tasks continue.
func (o *Orchestrator) Run(ctx context.Context, creds Credentials) (Report, error) {
	var report Report

	if err := o.prepareRoots(); err != nil {
		return report, err
	}

	session, err := o.server.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		return report, fmt.Errorf("logging in: %w", err)
	}
	o.logAuthenticated(session)

	if o.preview {
		o.console.DryRunNotice()
	}

	favorites, err := o.server.ListFavorites(ctx, session)
	if err != nil {
		return report, fmt.Errorf("fetching favorites: %w", err)
	}
	o.logFavorites(len(favorites))

	tasks, err := o.planner.Plan(ctx, session, favorites)
	if err != nil {
		return report, fmt.Errorf("planning downloads: %w", err)
	}

	report.Summary = service.Summarize(tasks)
	o.console.Summary(report.Summary)

	if o.preview {
		return o.previewTasks(ctx, session, tasks, report)
	}
	return o.downloadTasks(ctx, session, tasks, report)
}

func (o *Orchestrator) prepareRoots() error {
	for _, root := range o.layout.Roots() {
		if err := o.dirs.EnsureDir(root); err != nil {
			return fmt.Errorf("preparing output directory: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) previewTasks(ctx context.Context, session domain.Session, tasks []domain.DownloadTask, report Report) (Report, error) {
	if report.Summary.New == 0 {
		o.console.printf("[DRY-RUN] Nothing to download, everything is already present.\n")
		return report, nil
	}

	o.console.PreviewHeader()
	for _, task := range tasks {
		if !task.WillDownload {
			continue
		}
		result, err := o.downloader.Execute(ctx, session, task)
		if err != nil {
			return report, err
		}
		report.record(result.State)
	}
	return report, nil
}

func (o *Orchestrator) downloadTasks(ctx context.Context, session domain.Session, tasks []domain.DownloadTask, report Report) (Report, error) {
	var failures []error

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			o.console.EndProgress()
			return report, err
		}

		if !task.WillDownload {
			o.console.AlreadyPresent(task)
			report.Skipped++
			continue
		}

		o.logStarting(task)
		result, err := o.downloader.Execute(ctx, session, task)
		report.record(result.State)
		if err == nil {
			continue
		}

		o.console.EndProgress()
		if ctx.Err() != nil {
			return report, err
		}
		o.logTransferFailure(task, err)
		failures = append(failures, err)
	}

	o.console.Finished(report)

	if len(failures) > 0 {
		return report, fmt.Errorf("%d of %d downloads failed: %w", len(failures), report.Summary.New, errors.Join(failures...))
	}
	return report, nil
}

func (r *Report) record(state domain.TaskState) {
	switch state {
	case domain.TaskCompleted:
		r.Completed++
	case domain.TaskSkipped:
		r.Skipped++
	case domain.TaskPreviewed:
		r.Previewed++
	case domain.TaskFailed:
		r.Failed++
	}
}

func (o *Orchestrator) logAuthenticated(session domain.Session) {
	log.WithFields(log.Fields{
		"component": "orchestrator",
		"user":      session.UserName,
		"userID":    session.UserID,
	}).Info("logged in")
}

func (o *Orchestrator) logFavorites(count int) {
	log.WithFields(log.Fields{
		"component": "orchestrator",
		"favorites": count,
	}).Info("fetched favorites")
}

func (o *Orchestrator) logStarting(task domain.DownloadTask) {
	log.WithFields(log.Fields{
		"itemID": task.ItemID,
		"type":   task.ItemType,
		"label":  task.Label,
		"path":   task.Destination,
	}).Info("downloading")
}

func (o *Orchestrator) logTransferFailure(task domain.DownloadTask, err error) {
	log.WithFields(log.Fields{
		"itemID": task.ItemID,
		"path":   task.Destination,
		"error":  err,
	}).Error("download failed, continuing with next item")
}
