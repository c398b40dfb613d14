package app

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/amaumene/jellyfav/internal/domain"
	"github.com/amaumene/jellyfav/internal/naming"
	"github.com/amaumene/jellyfav/internal/service"
)

const bytesPerMegabyte = 1024 * 1024

const banner = `
========================================
  Jellyfin Favorites Downloader
========================================
`

// Console writes human-oriented output. In quiet mode it writes nothing;
// errors still reach the operator through the logger.
type Console struct {
	out          io.Writer
	quiet        bool
	progressOpen bool
}

func NewConsole(out io.Writer, quiet bool) *Console {
	return &Console{out: out, quiet: quiet}
}

func (c *Console) printf(format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Banner() {
	c.printf("%s\n", banner)
}

func (c *Console) DryRunNotice() {
	c.printf("DRY-RUN active, no files will be downloaded.\n\n")
}

func (c *Console) Summary(s service.Summary) {
	c.printf("\n========== Summary ==========\n")
	c.printf("Planned files:         %d\n", s.Total)
	c.printf("  New to download:     %d\n", s.New)
	c.printf("  Already present:     %d\n", s.Present)

	if s.KnownBytes > 0 {
		c.printf("\nEstimated download volume (known sizes): %s\n", naming.FormatMegabytes(s.KnownBytes))
	} else {
		c.printf("\nEstimated download volume: unknown (no size information)\n")
	}
	if s.UnknownSize > 0 {
		c.printf("%d file(s) without known size (not included in the estimate).\n", s.UnknownSize)
	}
	c.printf("=============================\n\n")
}

func (c *Console) PreviewHeader() {
	c.printf("[DRY-RUN] The following files would be downloaded:\n\n")
}

func (c *Console) AlreadyPresent(task domain.DownloadTask) {
	c.printf("[SKIP] already exists: %s\n", task.Destination)
}

// Report renders downloader events; it is passed to the Downloader as its
// Reporter.
func (c *Console) Report(e service.Event) {
	switch e.Kind {
	case service.EventSkipped:
		c.AlreadyPresent(e.Task)
	case service.EventPreview:
		c.printf("  - %s '%s'\n", e.Task.ItemType, e.Task.Title)
		c.printf("    -> %s\n", e.Task.Destination)
		c.printf("    -> %s\n\n", sizeLabel(e.Total))
	case service.EventStarted:
		c.printf("%s - %s\n", filepath.Base(e.Task.Destination), sizeLabel(e.Total))
	case service.EventProgress:
		c.progress(e)
	case service.EventCompleted:
		c.EndProgress()
		c.printf("    done: %s\n\n", e.Task.Destination)
	}
}

func (c *Console) progress(e service.Event) {
	done := float64(e.Downloaded) / bytesPerMegabyte
	if pct, ok := e.Percent(); ok {
		total := float64(e.Total) / bytesPerMegabyte
		c.printf("\r    progress: %6.1f/%6.1f MB (%5.1f%%)", done, total, pct)
	} else {
		c.printf("\r    progress: %6.1f MB", done)
	}
	c.progressOpen = !c.quiet
}

// EndProgress terminates an open progress line.
func (c *Console) EndProgress() {
	if !c.progressOpen {
		return
	}
	c.progressOpen = false
	c.printf("\n")
}

func (c *Console) Finished(r Report) {
	c.printf("Finished: %d downloaded, %d skipped, %d failed.\n", r.Completed, r.Skipped, r.Failed)
}

func sizeLabel(bytes int64) string {
	if bytes <= 0 {
		return "size unknown"
	}
	return naming.FormatMegabytes(bytes)
}
