package pkg

import (
	"context"
	"fmt"

	"github.com/mediacuts/cli/pkg/model"
)

// Login authenticates against the remote API and stores the account and its
// session locally. The account becomes the active one.
func (c *ClICtrl) Login(ctx context.Context, email, password, apiURL string) error {
	resp, err := c.Client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	account := model.Account{
		Email:  email,
		UserID: resp.UserID,
		APIURL: apiURL,
	}
	if err := c.SaveAccount(ctx, account); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	if err := c.Sessions.Save(account.StoreKey(), resp.UserID); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if err := c.setActiveAccountKey(account.StoreKey()); err != nil {
		return err
	}
	c.Client.SetUserID(resp.UserID)
	return nil
}

// Register creates a new login on the remote API and then behaves like Login.
func (c *ClICtrl) Register(ctx context.Context, email, password, apiURL string) error {
	resp, err := c.Client.CreateLogin(ctx, email, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	account := model.Account{
		Email:  email,
		UserID: resp.UserID,
		APIURL: apiURL,
	}
	if err := c.SaveAccount(ctx, account); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	if err := c.Sessions.Save(account.StoreKey(), resp.UserID); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return c.setActiveAccountKey(account.StoreKey())
}

// Logout clears the active account's session and removes it from the local
// database.
func (c *ClICtrl) Logout(ctx context.Context) error {
	account, err := c.ActiveAccount(ctx)
	if err != nil {
		return err
	}
	if err := c.Sessions.Clear(account.StoreKey()); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return c.DeleteAccount(ctx, account.StoreKey())
}

// ChangePassword updates the password for the active account.
func (c *ClICtrl) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	ctx, _, err := c.buildRequestContext(ctx)
	if err != nil {
		return err
	}
	return c.Client.ChangePassword(ctx, currentPassword, newPassword)
}
