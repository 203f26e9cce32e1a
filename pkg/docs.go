package pkg

import (
	"context"
	"fmt"

	"github.com/mediacuts/cli/internal/api"
	"github.com/mediacuts/cli/pkg/catalog"
	"github.com/mediacuts/cli/pkg/model"
	"github.com/mediacuts/cli/pkg/preview"
)

// ListDocuments fetches every project, flattens them into the document
// catalog and applies the query. Results are sorted most recent first.
func (c *ClICtrl) ListDocuments(ctx context.Context, query catalog.Query) ([]model.Document, error) {
	ctx, _, err := c.buildRequestContext(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := c.Client.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	docs := catalog.Flatten(projects)
	docs = catalog.Filter(docs, query)
	catalog.SortRecent(docs)
	return docs, nil
}

// ListProjects returns the project overview, with counts and sizes derived
// from the flattened catalog.
func (c *ClICtrl) ListProjects(ctx context.Context) ([]model.Project, error) {
	ctx, _, err := c.buildRequestContext(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := c.Client.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	return catalog.Summarize(projects), nil
}

// ProjectRefs returns the compact project listing (names and counts only),
// which is cheaper than the full nested listing.
func (c *ClICtrl) ProjectRefs(ctx context.Context) ([]api.ProjectRef, error) {
	ctx, _, err := c.buildRequestContext(ctx)
	if err != nil {
		return nil, err
	}
	refs, err := c.Client.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return refs, nil
}

// CreateProject creates a project on the remote API and returns its
// server-assigned key.
func (c *ClICtrl) CreateProject(ctx context.Context, name, kind string) (string, error) {
	ctx, _, err := c.buildRequestContext(ctx)
	if err != nil {
		return "", err
	}
	resp, err := c.Client.CreateProject(ctx, api.CreateProjectRequest{ProjectName: name, TypeProject: kind})
	if err != nil {
		return "", fmt.Errorf("failed to create project: %w", err)
	}
	return resp.SafeProjectName, nil
}

// DeleteProject removes a project and everything in it.
func (c *ClICtrl) DeleteProject(ctx context.Context, projectKey string) error {
	ctx, _, err := c.buildRequestContext(ctx)
	if err != nil {
		return err
	}
	return c.Client.DeleteProject(ctx, projectKey)
}

// Preview resolves a document into a displayable state. The caller owns the
// returned state and must Close it when done; any previously open preview
// should be closed first so at most one temporary file is live.
func (c *ClICtrl) Preview(ctx context.Context, doc model.Document) (*preview.State, error) {
	ctx, _, err := c.buildRequestContext(ctx)
	if err != nil {
		return nil, err
	}
	resolver := preview.NewResolver(c.Client)
	return resolver.Resolve(ctx, doc.ProjectKey, doc), nil
}

// Download saves a document to destDir and returns the written path.
func (c *ClICtrl) Download(ctx context.Context, doc model.Document, destDir string) (string, error) {
	ctx, _, err := c.buildRequestContext(ctx)
	if err != nil {
		return "", err
	}
	if !doc.Downloadable() {
		return "", fmt.Errorf("document %s is not ready for download (status %s)", doc.DisplayName, doc.Status)
	}
	path, err := c.Client.DownloadDocument(ctx, doc.ProjectKey, doc.RemoteID, destDir, doc.DisplayName)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	return path, nil
}

// DeleteDocument removes a single document from its project.
func (c *ClICtrl) DeleteDocument(ctx context.Context, doc model.Document) error {
	ctx, _, err := c.buildRequestContext(ctx)
	if err != nil {
		return err
	}
	return c.Client.DeleteDocument(ctx, doc.ProjectKey, doc.RemoteID)
}

// Settings fetches the account settings. A missing settings record comes
// back empty, not as an error.
func (c *ClICtrl) Settings(ctx context.Context) (api.Settings, error) {
	ctx, _, err := c.buildRequestContext(ctx)
	if err != nil {
		return nil, err
	}
	return c.Client.GetSettings(ctx)
}

// SaveSettings merges the given values into the account settings.
func (c *ClICtrl) SaveSettings(ctx context.Context, values api.Settings) error {
	ctx, _, err := c.buildRequestContext(ctx)
	if err != nil {
		return err
	}
	current, err := c.Client.GetSettings(ctx)
	if err != nil {
		return err
	}
	for k, v := range values {
		current[k] = v
	}
	return c.Client.SaveSettings(ctx, current)
}
