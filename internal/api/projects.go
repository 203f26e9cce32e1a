package api

import (
	"context"
	"fmt"
	"net/url"
)

// GetProjects fetches the full project listing with nested file metadata.
func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	var result []Project
	r, err := c.restClient.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&serverMessage{}).
		Get("/projects")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	if r.IsError() {
		return nil, apiErrorFrom(r)
	}

	return result, nil
}

// ListProjects fetches the compact project listing (name + file count only).
func (c *Client) ListProjects(ctx context.Context) ([]ProjectRef, error) {
	var result []ProjectRef
	r, err := c.restClient.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&serverMessage{}).
		Get("/list-projects")

	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	if r.IsError() {
		return nil, apiErrorFrom(r)
	}

	return result, nil
}

// CreateProject creates an empty project and returns its descriptor.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*CreateProjectResponse, error) {
	var result CreateProjectResponse
	r, err := c.restClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&serverMessage{}).
		Post("/projects/create")

	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if r.IsError() {
		return nil, apiErrorFrom(r)
	}

	return &result, nil
}

// DeleteProject removes a project and everything inside it. Irreversible.
func (c *Client) DeleteProject(ctx context.Context, projectKey string) error {
	r, err := c.restClient.R().
		SetContext(ctx).
		SetError(&serverMessage{}).
		Delete(fmt.Sprintf("/projects/%s", url.PathEscape(projectKey)))

	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if r.IsError() {
		return apiErrorFrom(r)
	}

	return nil
}

// DeleteDocument removes a single document from a project.
func (c *Client) DeleteDocument(ctx context.Context, projectKey, documentID string) error {
	r, err := c.restClient.R().
		SetContext(ctx).
		SetError(&serverMessage{}).
		Delete(fmt.Sprintf("/projects/%s/videos/%s", url.PathEscape(projectKey), url.PathEscape(documentID)))

	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if r.IsError() {
		return apiErrorFrom(r)
	}

	return nil
}
