package api

import (
	"encoding/json"
)

// Project is a project entry as returned by GET /projects.
type Project struct {
	Name        string   `json:"name"`
	TypeProject string   `json:"type_project"`
	Status      string   `json:"status"`
	Used        bool     `json:"used"`
	CreatedAt   string   `json:"createdAt"`
	Videos      VideoSet `json:"videos"`
}

// Video is one stored file record inside a project. The server calls every
// stored file a "video" regardless of its actual type.
type Video struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploadedAt"`
	Status     string `json:"status"`
}

// VideoSet is the nested file collection of a project. Older server versions
// return it as an object keyed by video id, newer ones as an array, so both
// shapes decode into the same slice.
type VideoSet []Video

func (v *VideoSet) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*v = nil
		return nil
	}
	if data[0] == '[' {
		var list []Video
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*v = list
		return nil
	}
	var byID map[string]Video
	if err := json.Unmarshal(data, &byID); err != nil {
		return err
	}
	out := make([]Video, 0, len(byID))
	for id, video := range byID {
		if video.ID == "" {
			video.ID = id
		}
		out = append(out, video)
	}
	*v = out
	return nil
}

// ProjectRef is the compact listing returned by GET /list-projects.
type ProjectRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FileCount int    `json:"fileCount"`
}

// CreateProjectRequest is the body for POST /projects/create.
type CreateProjectRequest struct {
	ProjectName string `json:"projectName"`
	TypeProject string `json:"type_project"`
}

// CreateProjectResponse is the confirmation for a created project. The server
// returns both the display name and the sanitized key used in URLs.
type CreateProjectResponse struct {
	Message         string `json:"message"`
	ProjectName     string `json:"project_name"`
	SafeProjectName string `json:"safe_project_name"`
}

// UploadResponse is the confirmation for POST /upload-video.
type UploadResponse struct {
	Message     string `json:"message"`
	VideoID     string `json:"video_id"`
	Filename    string `json:"filename"`
	ProjectName string `json:"project_name"`
}

// PreviewResponse is the indirect binary reference returned by the preview
// endpoint.
type PreviewResponse struct {
	PreviewURL string `json:"preview_url"`
	Filename   string `json:"filename"`
}

// LoginRequest is the body for POST /login and POST /create-login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the server-assigned user id after authentication.
type LoginResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// ChangePasswordRequest is the body for POST /change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Settings is the flat key/value settings document round-tripped with the
// /settings endpoint.
type Settings map[string]any
