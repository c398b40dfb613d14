package service

import "github.com/amaumene/jellyfav/internal/domain"

type EventKind string

const (
	EventSkipped   EventKind = "skipped"
	EventPreview   EventKind = "preview"
	EventStarted   EventKind = "started"
	EventProgress  EventKind = "progress"
	EventCompleted EventKind = "completed"
)

// Event describes one step of a task. Total is zero when the size is unknown.
type Event struct {
	Kind       EventKind
	Task       domain.DownloadTask
	Downloaded int64
	Total      int64
}

// Percent returns the completed share in [0, 100], or false without a total.
func (e Event) Percent() (float64, bool) {
	if e.Total <= 0 {
		return 0, false
	}
	pct := float64(e.Downloaded) * 100 / float64(e.Total)
	return min(pct, 100), true
}

type Reporter func(Event)

func discardEvents(Event) {}
