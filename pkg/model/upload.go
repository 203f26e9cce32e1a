package model

// UploadStatus represents the current state of an upload task.
type UploadStatus int

const (
	UploadStatusPending UploadStatus = iota
	UploadStatusUploading
	UploadStatusSuccess
	UploadStatusError
)

func (s UploadStatus) String() string {
	switch s {
	case UploadStatusPending:
		return "pending"
	case UploadStatusUploading:
		return "uploading"
	case UploadStatusSuccess:
		return "success"
	case UploadStatusError:
		return "error"
	default:
		return "unknown"
	}
}

// UploadTask is one file's individual transfer attempt. Tasks are owned by
// the queue for the lifetime of a session and are never persisted. Status
// only moves forward: pending -> uploading -> success|error.
type UploadTask struct {
	LocalID  string // client-generated, unique per task
	Name     string // display name (base of the local path)
	Path     string // absolute local path
	Size     int64  // bytes, 0 when stat failed at enqueue
	Progress int    // 0-100
	Status   UploadStatus
	Err      string // set when Status == UploadStatusError
	RemoteID string // server-assigned id, set when Status == UploadStatusSuccess
	Skipped  bool   // transfer satisfied by the local dedup mapping
}

// UploadConfig contains configuration for an upload session.
type UploadConfig struct {
	ProjectKey  string // destination project key (sanitized name)
	ProjectName string // display name sent in the upload metadata
	Force       bool   // upload even when a local duplicate mapping exists
}
