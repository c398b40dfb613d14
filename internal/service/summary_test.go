package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amaumene/jellyfav/internal/domain"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		tasks []domain.DownloadTask
		want  Summary
	}{
		{
			name: "empty",
			want: Summary{},
		},
		{
			name: "mixed",
			tasks: []domain.DownloadTask{
				{ItemID: "1", SizeBytes: 100, WillDownload: true},
				{ItemID: "2", SizeBytes: 0, WillDownload: true},
				{ItemID: "3", SizeBytes: 50, WillDownload: false},
				{ItemID: "4", SizeBytes: 25, WillDownload: true},
			},
			want: Summary{Total: 4, New: 3, Present: 1, KnownBytes: 125, UnknownSize: 1},
		},
		{
			name: "all present",
			tasks: []domain.DownloadTask{
				{ItemID: "1", SizeBytes: 100},
				{ItemID: "2"},
			},
			want: Summary{Total: 2, Present: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.tasks))
		})
	}
}
