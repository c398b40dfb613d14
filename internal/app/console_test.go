package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amaumene/jellyfav/internal/domain"
	"github.com/amaumene/jellyfav/internal/service"
)

func TestConsole_Progress(t *testing.T) {
	task := domain.DownloadTask{Destination: "/m/Test.mkv"}

	tests := []struct {
		name  string
		event service.Event
		want  string
	}{
		{
			name:  "known total",
			event: service.Event{Kind: service.EventProgress, Task: task, Downloaded: 1048576, Total: 2097152},
			want:  "\r    progress:    1.0/   2.0 MB ( 50.0%)",
		},
		{
			name:  "unknown total",
			event: service.Event{Kind: service.EventProgress, Task: task, Downloaded: 3145728},
			want:  "\r    progress:    3.0 MB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			NewConsole(&out, false).Report(tt.event)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestConsole_CompletedClosesProgressLine(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(&out, false)
	task := domain.DownloadTask{Destination: "/m/Test.mkv"}

	console.Report(service.Event{Kind: service.EventStarted, Task: task})
	console.Report(service.Event{Kind: service.EventProgress, Task: task, Downloaded: 1048576})
	console.Report(service.Event{Kind: service.EventCompleted, Task: task})

	assert.Equal(t,
		"Test.mkv - size unknown\n\r    progress:    1.0 MB\n    done: /m/Test.mkv\n\n",
		out.String())
}

func TestConsole_Summary(t *testing.T) {
	var out bytes.Buffer
	NewConsole(&out, false).Summary(service.Summary{Total: 3, New: 2, Present: 1, KnownBytes: 1048576, UnknownSize: 1})

	output := out.String()
	assert.Contains(t, output, "Planned files:         3\n")
	assert.Contains(t, output, "  New to download:     2\n")
	assert.Contains(t, output, "  Already present:     1\n")
	assert.Contains(t, output, "Estimated download volume (known sizes): 1.0 MB\n")
	assert.Contains(t, output, "1 file(s) without known size")
}

func TestConsole_Quiet(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(&out, true)
	task := domain.DownloadTask{Destination: "/m/Test.mkv"}

	console.Banner()
	console.Summary(service.Summary{Total: 1})
	console.Report(service.Event{Kind: service.EventProgress, Task: task, Downloaded: 1})
	console.EndProgress()

	assert.Empty(t, out.String())
}
