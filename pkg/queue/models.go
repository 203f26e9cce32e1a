package queue

// Summary provides overall statistics for an upload session.
type Summary struct {
	TotalFiles     int
	PendingFiles   int
	CompletedFiles int
	FailedFiles    int
	SkippedFiles   int
	UploadedBytes  int64
	Errors         []TaskError
}

// TaskError captures details about a failed upload.
type TaskError struct {
	FileName string
	Message  string
}
