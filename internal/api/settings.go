package api

import (
	"context"
	"fmt"
	"net/http"
)

// GetSettings fetches the user's settings as a flat key/value document.
// A 404 means no settings were ever saved; that comes back as an empty map.
func (c *Client) GetSettings(ctx context.Context) (Settings, error) {
	var result Settings
	r, err := c.restClient.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&serverMessage{}).
		Get("/settings")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	if r.StatusCode() == http.StatusNotFound {
		return Settings{}, nil
	}

	if r.IsError() {
		return nil, apiErrorFrom(r)
	}

	return result, nil
}

// SaveSettings stores the user's settings document.
func (c *Client) SaveSettings(ctx context.Context, settings Settings) error {
	r, err := c.restClient.R().
		SetContext(ctx).
		SetBody(settings).
		SetError(&serverMessage{}).
		Post("/settings")

	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if r.IsError() {
		return apiErrorFrom(r)
	}

	return nil
}
