package domain

type TaskState string

const (
	TaskPlanned     TaskState = "planned"
	TaskSkipped     TaskState = "skipped"
	TaskPreviewed   TaskState = "previewed"
	TaskDownloading TaskState = "downloading"
	TaskCompleted   TaskState = "completed"
	TaskFailed      TaskState = "failed"
)

// DownloadTask binds one leaf catalog item to its destination on disk.
// Label records which favorite produced the task.
type DownloadTask struct {
	ItemID       string
	ItemType     ItemType
	Label        string
	Title        string
	Destination  string
	SizeBytes    int64
	WillDownload bool
}

func (t DownloadTask) HasSize() bool {
	return t.SizeBytes > 0
}

type DownloadResult struct {
	Task         DownloadTask
	State        TaskState
	BytesWritten int64
}
