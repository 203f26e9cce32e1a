package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
)

// UploadMetadata is the JSON metadata part of a multipart upload.
type UploadMetadata struct {
	ProjectName string `json:"projectName"`
	TypeProject string `json:"type_project"`
}

// UploadDocument uploads one local file to a project via multipart POST.
// The server assigns and returns the document's remote id.
func (c *Client) UploadDocument(ctx context.Context, filePath string, meta UploadMetadata) (*UploadResponse, error) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode upload metadata: %w", err)
	}

	var result UploadResponse
	r, err := c.restClient.R().
		SetContext(ctx).
		SetFile("file", filePath).
		SetMultipartField("metadata", "", "application/json", bytes.NewReader(metaJSON)).
		SetResult(&result).
		SetError(&serverMessage{}).
		Post("/upload-video")

	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", filepath.Base(filePath), err)
	}

	if r.IsError() {
		return nil, apiErrorFrom(r)
	}

	return &result, nil
}

// Content is a fetched document body together with its declared content type.
type Content struct {
	Body        []byte
	ContentType string
}

// FetchContent fetches a document's raw content from the content endpoint.
// The server serves text-like files inline and everything else as an
// attachment; either way the body and declared content type come back as-is.
func (c *Client) FetchContent(ctx context.Context, projectKey, documentID string) (*Content, error) {
	r, err := c.restClient.R().
		SetContext(ctx).
		SetError(&serverMessage{}).
		Get(fmt.Sprintf("/projects/%s/files/%s/content", url.PathEscape(projectKey), url.PathEscape(documentID)))

	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	if r.IsError() {
		return nil, apiErrorFrom(r)
	}

	return &Content{
		Body:        r.Body(),
		ContentType: r.Header().Get("Content-Type"),
	}, nil
}

// GetPreviewURL asks the preview endpoint for an indirect reference to a
// document's binary content.
func (c *Client) GetPreviewURL(ctx context.Context, projectKey, documentID string) (*PreviewResponse, error) {
	var result PreviewResponse
	r, err := c.restClient.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&serverMessage{}).
		Get(fmt.Sprintf("/projects/%s/videos/%s/preview", url.PathEscape(projectKey), url.PathEscape(documentID)))

	if err != nil {
		return nil, fmt.Errorf("failed to get preview url: %w", err)
	}

	if r.IsError() {
		return nil, apiErrorFrom(r)
	}

	return &result, nil
}

// FetchURL fetches an absolute URL (e.g. a preview_url) and returns its body.
func (c *Client) FetchURL(ctx context.Context, absoluteURL string) (*Content, error) {
	r, err := c.restClient.R().
		SetContext(ctx).
		Get(absoluteURL)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", absoluteURL, err)
	}

	if r.IsError() {
		return nil, &ApiError{StatusCode: r.StatusCode(), Message: r.String()}
	}

	return &Content{
		Body:        r.Body(),
		ContentType: r.Header().Get("Content-Type"),
	}, nil
}

// DownloadDocument downloads a document into destDir and returns the path it
// was written to. The filename from Content-Disposition wins over fallback.
func (c *Client) DownloadDocument(ctx context.Context, projectKey, documentID, destDir, fallbackName string) (string, error) {
	r, err := c.restClient.R().
		SetContext(ctx).
		SetError(&serverMessage{}).
		Get(fmt.Sprintf("/projects/%s/videos/%s/download", url.PathEscape(projectKey), url.PathEscape(documentID)))

	if err != nil {
		return "", fmt.Errorf("failed to download document: %w", err)
	}

	if r.IsError() {
		return "", apiErrorFrom(r)
	}

	name := fallbackName
	if cd := r.Header().Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if fn := params["filename"]; fn != "" {
				name = fn
			}
		}
	}
	if name == "" {
		name = documentID
	}

	destPath := filepath.Join(destDir, filepath.Base(name))
	if err := os.WriteFile(destPath, r.Body(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", destPath, err)
	}

	return destPath, nil
}
