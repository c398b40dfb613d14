package service

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/amaumene/jellyfav/internal/domain"
	"github.com/amaumene/jellyfav/internal/storage"
)

const DefaultChunkSize = 1024 * 1024

type partStore interface {
	Exists(path string) bool
	CreatePart(dest string) (*os.File, error)
	Promote(dest string) error
}

type DownloaderOptions struct {
	Preview   bool
	ChunkSize int
	Reporter  Reporter
}

type Downloader struct {
	source    domain.MediaSource
	files     partStore
	preview   bool
	chunkSize int
	report    Reporter
}

func NewDownloader(source domain.MediaSource, files partStore, opts DownloaderOptions) *Downloader {
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	report := opts.Reporter
	if report == nil {
		report = discardEvents
	}

	return &Downloader{
		source:    source,
		files:     files,
		preview:   opts.Preview,
		chunkSize: chunkSize,
		report:    report,
	}
}

// Execute materializes one task. An existing destination is never
// re-downloaded, and a failed transfer leaves only the .part file behind.
func (d *Downloader) Execute(ctx context.Context, session domain.Session, task domain.DownloadTask) (domain.DownloadResult, error) {
	result := domain.DownloadResult{Task: task, State: domain.TaskPlanned}

	if d.files.Exists(task.Destination) {
		d.logSkipped(task)
		d.report(Event{Kind: EventSkipped, Task: task})
		result.State = domain.TaskSkipped
		return result, nil
	}

	if d.preview {
		d.report(Event{Kind: EventPreview, Task: task, Total: task.SizeBytes})
		result.State = domain.TaskPreviewed
		return result, nil
	}

	stream, err := d.source.Download(ctx, session, task.ItemID)
	if err != nil {
		result.State = domain.TaskFailed
		return result, fmt.Errorf("opening download for %s: %w", task.ItemID, err)
	}
	defer stream.Body.Close()

	result.State = domain.TaskDownloading
	total := totalSize(task, stream)
	d.report(Event{Kind: EventStarted, Task: task, Total: total})

	written, err := d.writePart(ctx, task, stream.Body, total)
	result.BytesWritten = written
	if err != nil {
		result.State = domain.TaskFailed
		return result, fmt.Errorf("%w: %s: %w", domain.ErrTransfer, task.Destination, err)
	}

	if err := d.files.Promote(task.Destination); err != nil {
		result.State = domain.TaskFailed
		return result, fmt.Errorf("%w: %w", domain.ErrTransfer, err)
	}

	d.logCompleted(task, written)
	d.report(Event{Kind: EventCompleted, Task: task, Downloaded: written, Total: total})
	result.State = domain.TaskCompleted
	return result, nil
}

func (d *Downloader) writePart(ctx context.Context, task domain.DownloadTask, src io.Reader, total int64) (int64, error) {
	file, err := d.files.CreatePart(task.Destination)
	if err != nil {
		return 0, err
	}

	written, copyErr := d.copyChunks(ctx, file, src, task, total)
	closeErr := file.Close()
	if copyErr != nil {
		return written, copyErr
	}
	if closeErr != nil {
		return written, fmt.Errorf("closing part file: %w", closeErr)
	}
	return written, nil
}

func (d *Downloader) copyChunks(ctx context.Context, dst io.Writer, src io.Reader, task domain.DownloadTask, total int64) (int64, error) {
	buf := make([]byte, d.chunkSize)
	var downloaded int64

	for {
		if err := ctx.Err(); err != nil {
			return downloaded, err
		}

		n, readErr := fillChunk(src, buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return downloaded, fmt.Errorf("writing chunk: %w", err)
			}
			downloaded += int64(n)
			d.report(Event{Kind: EventProgress, Task: task, Downloaded: downloaded, Total: total})
		}

		switch readErr {
		case nil:
		case io.EOF:
			return downloaded, nil
		default:
			return downloaded, fmt.Errorf("reading body: %w", readErr)
		}
	}
}

// fillChunk reads until buf is full or src fails. Unlike io.ReadFull it
// returns the reader's own error, so a truncated body (io.ErrUnexpectedEOF
// from the transport) is not mistaken for a clean end of stream.
func fillChunk(src io.Reader, buf []byte) (int, error) {
	var n int
	for n < len(buf) {
		m, err := src.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// totalSize prefers the catalog size and falls back to the declared length.
func totalSize(task domain.DownloadTask, stream *domain.Stream) int64 {
	if task.HasSize() {
		return task.SizeBytes
	}
	if stream.ContentLength > 0 {
		return stream.ContentLength
	}
	return 0
}

func (d *Downloader) logSkipped(task domain.DownloadTask) {
	log.WithFields(log.Fields{
		"itemID": task.ItemID,
		"path":   task.Destination,
	}).Debug("destination exists, skipping download")
}

func (d *Downloader) logCompleted(task domain.DownloadTask, written int64) {
	log.WithFields(log.Fields{
		"itemID": task.ItemID,
		"path":   task.Destination,
		"bytes":  written,
		"part":   storage.PartPath(task.Destination),
	}).Debug("download promoted")
}
