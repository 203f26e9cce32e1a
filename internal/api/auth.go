package api

import (
	"context"
	"fmt"
)

// Login authenticates with email and password and returns the server-assigned
// user id. The id must then be set on the client with SetUserID.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var result LoginResponse
	r, err := c.restClient.R().
		SetContext(ctx).
		SetBody(LoginRequest{Email: email, Password: password}).
		SetResult(&result).
		SetError(&serverMessage{}).
		Post("/login")

	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if r.IsError() {
		return nil, apiErrorFrom(r)
	}

	return &result, nil
}

// CreateLogin registers a new account.
func (c *Client) CreateLogin(ctx context.Context, email, password string) (*LoginResponse, error) {
	var result LoginResponse
	r, err := c.restClient.R().
		SetContext(ctx).
		SetBody(LoginRequest{Email: email, Password: password}).
		SetResult(&result).
		SetError(&serverMessage{}).
		Post("/create-login")

	if err != nil {
		return nil, fmt.Errorf("account creation failed: %w", err)
	}

	if r.IsError() {
		return nil, apiErrorFrom(r)
	}

	return &result, nil
}

// ChangePassword changes the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	r, err := c.restClient.R().
		SetContext(ctx).
		SetBody(ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}).
		SetError(&serverMessage{}).
		Post("/change-password")

	if err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	if r.IsError() {
		return apiErrorFrom(r)
	}

	return nil
}
