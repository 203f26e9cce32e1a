// Package catalog turns the API's nested project listing into flat,
// filterable document views. All filtering is client-side; the listing is
// assumed small enough to hold and scan in memory.
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/mediacuts/cli/internal/api"
	"github.com/mediacuts/cli/pkg/filetype"
	"github.com/mediacuts/cli/pkg/model"
)

// Flatten expands every project's nested file collection into a uniform
// document list, in listing order.
func Flatten(projects []api.Project) []model.Document {
	var docs []model.Document
	for _, p := range projects {
		for _, v := range p.Videos {
			docs = append(docs, toDocument(v, p))
		}
	}
	return docs
}

func toDocument(v api.Video, p api.Project) model.Document {
	id := v.ID
	if id == "" {
		id = v.Filename
	}
	status := model.DocumentStatus(v.Status)
	if status == "" {
		if v.UploadedAt != "" {
			status = model.DocStatusReady
		} else {
			status = model.DocStatusUploaded
		}
	}
	return model.Document{
		RemoteID:    id,
		DisplayName: v.Filename,
		Extension:   filetype.Ext(v.Filename),
		SizeBytes:   v.Size,
		UploadedAt:  parseTimestamp(v.UploadedAt),
		Status:      status,
		ProjectKey:  p.Name,
		ProjectName: p.Name,
	}
}

// parseTimestamp parses the server's ISO timestamps. Anything unparseable is
// the zero time, which sorts as oldest in recent views.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Query is a client-side document filter. Zero values match everything.
type Query struct {
	Search  string               // case-insensitive substring on name and project
	Project string               // exact project name
	Status  model.DocumentStatus // exact status
}

// Filter applies a query to a document list.
func Filter(docs []model.Document, q Query) []model.Document {
	search := strings.ToLower(q.Search)
	var out []model.Document
	for _, d := range docs {
		if search != "" &&
			!strings.Contains(strings.ToLower(d.DisplayName), search) &&
			!strings.Contains(strings.ToLower(d.ProjectName), search) {
			continue
		}
		if q.Project != "" && d.ProjectName != q.Project {
			continue
		}
		if q.Status != "" && d.Status != q.Status {
			continue
		}
		out = append(out, d)
	}
	return out
}

// SortRecent orders documents by upload time, newest first. Documents
// without a timestamp sort as oldest. The sort is stable so listing order
// breaks ties.
func SortRecent(docs []model.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
}

// Summarize maps the API listing into project summaries with counts and
// sizes rederived from the flattened documents.
func Summarize(projects []api.Project) []model.Project {
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		proj := model.Project{
			Key:          p.Name,
			Name:         p.Name,
			Kind:         projectKind(p),
			Status:       p.Status,
			LastModified: parseTimestamp(p.CreatedAt),
		}
		for _, v := range p.Videos {
			doc := toDocument(v, p)
			proj.Documents = append(proj.Documents, doc)
			proj.TotalSize += doc.SizeBytes
			if doc.UploadedAt.After(proj.LastModified) {
				proj.LastModified = doc.UploadedAt
			}
		}
		proj.FileCount = len(proj.Documents)
		out = append(out, proj)
	}
	return out
}

func projectKind(p api.Project) model.ProjectKind {
	switch p.TypeProject {
	case string(model.ProjectKindVideo):
		return model.ProjectKindVideo
	case string(model.ProjectKindDocument):
		return model.ProjectKindDocument
	case string(model.ProjectKindFiles):
		return model.ProjectKindFiles
	}
	if len(p.Videos) > 0 {
		return model.ProjectKindVideo
	}
	return model.ProjectKindFiles
}

// ProjectNames returns the distinct parent project names present in a
// document list, in first-seen order.
func ProjectNames(docs []model.Document) []string {
	seen := make(map[string]bool)
	var names []string
	for _, d := range docs {
		if d.ProjectName == "" || seen[d.ProjectName] {
			continue
		}
		seen[d.ProjectName] = true
		names = append(names, d.ProjectName)
	}
	return names
}
