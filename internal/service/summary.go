package service

import "github.com/amaumene/jellyfav/internal/domain"

// Summary counts a plan. KnownBytes and UnknownSize cover only the tasks
// that will be downloaded.
type Summary struct {
	Total       int
	New         int
	Present     int
	KnownBytes  int64
	UnknownSize int
}

func Summarize(tasks []domain.DownloadTask) Summary {
	summary := Summary{Total: len(tasks)}
	for _, task := range tasks {
		if !task.WillDownload {
			summary.Present++
			continue
		}

		summary.New++
		if task.HasSize() {
			summary.KnownBytes += task.SizeBytes
		} else {
			summary.UnknownSize++
		}
	}
	return summary
}
