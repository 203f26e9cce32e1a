package pkg

import (
	"context"
	"fmt"

	"github.com/mediacuts/cli/internal/api"
	"github.com/mediacuts/cli/pkg/model"
	"github.com/mediacuts/cli/pkg/secrets"
	bolt "go.etcd.io/bbolt"
)

// ClICtrl ties the API client, the local bolt database and the session
// store together. All commands go through it.
type ClICtrl struct {
	Client   *api.Client
	DB       *bolt.DB
	Sessions *secrets.SessionStore
}

// Init prepares the top-level buckets.
func (c *ClICtrl) Init() error {
	return c.DB.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(model.AccountsBucket))
		return err
	})
}

// ActiveAccount returns the account marked active, or an error when no
// account is configured.
func (c *ClICtrl) ActiveAccount(ctx context.Context) (model.Account, error) {
	var account model.Account
	activeKey, err := c.activeAccountKey()
	if err != nil {
		return account, err
	}
	accounts, err := c.GetAccounts(ctx)
	if err != nil {
		return account, err
	}
	if len(accounts) == 0 {
		return account, fmt.Errorf("no accounts found. Log in using 'mediacuts account login'")
	}
	for _, acc := range accounts {
		if acc.StoreKey() == activeKey {
			return acc, nil
		}
	}
	// The marked account may have been removed; fall back to the first one.
	return accounts[0], nil
}

// buildRequestContext returns a context carrying the active account and a
// client configured with its user id.
func (c *ClICtrl) buildRequestContext(ctx context.Context) (context.Context, model.Account, error) {
	account, err := c.ActiveAccount(ctx)
	if err != nil {
		return ctx, account, err
	}
	userID, err := c.Sessions.Load(account.StoreKey())
	if err != nil {
		return ctx, account, fmt.Errorf("failed to load session: %w", err)
	}
	if userID == "" {
		userID = account.UserID
	}
	if userID == "" {
		return ctx, account, fmt.Errorf("no session for %s. Log in again", account.Email)
	}
	c.Client.SetUserID(userID)
	ctx = context.WithValue(ctx, model.AccountKey, account.StoreKey())
	return ctx, account, nil
}

func (c *ClICtrl) activeAccountKey() (string, error) {
	var key string
	err := c.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(model.AccountsBucket))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(model.ActiveAccountKey)); v != nil {
			key = string(v)
		}
		return nil
	})
	return key, err
}

func (c *ClICtrl) setActiveAccountKey(key string) error {
	return c.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(model.AccountsBucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(model.ActiveAccountKey), []byte(key))
	})
}
