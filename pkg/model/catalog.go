package model

import "time"

// DocumentStatus is the server-reported lifecycle state of a stored document.
type DocumentStatus string

const (
	DocStatusUploaded   DocumentStatus = "uploaded"
	DocStatusProcessing DocumentStatus = "processing"
	DocStatusReady      DocumentStatus = "ready"
	DocStatusError      DocumentStatus = "error"
)

// ProjectKind is the flavor of a project.
type ProjectKind string

const (
	ProjectKindFiles    ProjectKind = "files"
	ProjectKindVideo    ProjectKind = "video"
	ProjectKindDocument ProjectKind = "document"
)

// Document is one stored file record within a project.
type Document struct {
	RemoteID    string
	DisplayName string
	Extension   string
	SizeBytes   int64
	UploadedAt  time.Time // zero when the server never recorded a timestamp
	Status      DocumentStatus
	ProjectKey  string // parent project key
	ProjectName string // parent project display name
}

// Downloadable reports whether the document's status permits download.
func (d Document) Downloadable() bool {
	return d.Status == DocStatusReady
}

// Project is a user-scoped grouping of documents. FileCount and TotalSize are
// derived from Documents on every load, never mutated independently.
type Project struct {
	Key          string // sanitized name, used in API paths
	Name         string
	Kind         ProjectKind
	Status       string
	FileCount    int
	TotalSize    int64
	LastModified time.Time
	Documents    []Document // ordered by arrival
}
