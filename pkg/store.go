package pkg

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mediacuts/cli/pkg/model"
	bolt "go.etcd.io/bbolt"
)

// GetDB opens the local bolt database, creating it if needed.
func GetDB(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", path, err)
	}
	return db, nil
}

// GetAccounts returns all saved accounts.
func (c *ClICtrl) GetAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := c.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(model.AccountsBucket))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			if string(k) == model.ActiveAccountKey {
				return nil
			}
			var acc model.Account
			if err := json.Unmarshal(v, &acc); err != nil {
				return fmt.Errorf("failed to parse account %s: %w", k, err)
			}
			accounts = append(accounts, acc)
			return nil
		})
	})
	return accounts, err
}

// SaveAccount stores an account record and its per-account buckets.
func (c *ClICtrl) SaveAccount(ctx context.Context, account model.Account) error {
	return c.DB.Update(func(tx *bolt.Tx) error {
		accounts, err := tx.CreateBucketIfNotExists([]byte(model.AccountsBucket))
		if err != nil {
			return err
		}
		value, err := json.Marshal(account)
		if err != nil {
			return fmt.Errorf("failed to marshal account: %w", err)
		}
		if err := accounts.Put([]byte(account.StoreKey()), value); err != nil {
			return err
		}

		accountBucket, err := tx.CreateBucketIfNotExists([]byte(account.StoreKey()))
		if err != nil {
			return fmt.Errorf("failed to create account bucket: %w", err)
		}
		for _, sub := range []model.AccountStore{model.KVConfig, model.FileHashes} {
			if _, err := accountBucket.CreateBucketIfNotExists([]byte(sub)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", sub, err)
			}
		}
		return nil
	})
}

// DeleteAccount removes an account record and its buckets.
func (c *ClICtrl) DeleteAccount(ctx context.Context, accountKey string) error {
	return c.DB.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket([]byte(model.AccountsBucket)); b != nil {
			if err := b.Delete([]byte(accountKey)); err != nil {
				return err
			}
		}
		if tx.Bucket([]byte(accountKey)) != nil {
			return tx.DeleteBucket([]byte(accountKey))
		}
		return nil
	})
}

// PutValue writes a value into one of the account's stores.
func (c *ClICtrl) PutValue(ctx context.Context, store model.AccountStore, key []byte, value []byte) error {
	return c.DB.Update(func(tx *bolt.Tx) error {
		kvBucket, err := getAccountStore(ctx, tx, store)
		if err != nil {
			return err
		}
		return kvBucket.Put(key, value)
	})
}

// GetValue reads a value from one of the account's stores. Missing keys
// return nil without error.
func (c *ClICtrl) GetValue(ctx context.Context, store model.AccountStore, key []byte) ([]byte, error) {
	var value []byte
	err := c.DB.View(func(tx *bolt.Tx) error {
		kvBucket, err := getAccountStore(ctx, tx, store)
		if err != nil {
			return err
		}
		if v := kvBucket.Get(key); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	return value, err
}

// DeleteValue removes a key from one of the account's stores.
func (c *ClICtrl) DeleteValue(ctx context.Context, store model.AccountStore, key []byte) error {
	return c.DB.Update(func(tx *bolt.Tx) error {
		kvBucket, err := getAccountStore(ctx, tx, store)
		if err != nil {
			return err
		}
		return kvBucket.Delete(key)
	})
}

// GetConfigValue reads a string from the account's kv config store.
func (c *ClICtrl) GetConfigValue(ctx context.Context, key string) (string, error) {
	value, err := c.GetValue(ctx, model.KVConfig, []byte(key))
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// PutConfigValue writes a string into the account's kv config store.
func (c *ClICtrl) PutConfigValue(ctx context.Context, key string, value string) error {
	return c.PutValue(ctx, model.KVConfig, []byte(key), []byte(value))
}

func getAccountStore(ctx context.Context, tx *bolt.Tx, storeType model.AccountStore) (*bolt.Bucket, error) {
	accountKey, ok := ctx.Value(model.AccountKey).(string)
	if !ok || accountKey == "" {
		return nil, fmt.Errorf("no account in context")
	}
	accountBucket := tx.Bucket([]byte(accountKey))
	if accountBucket == nil {
		return nil, fmt.Errorf("account bucket not found")
	}
	store := accountBucket.Bucket([]byte(storeType))
	if store == nil {
		return nil, fmt.Errorf("store %s not found", storeType)
	}
	return store, nil
}

// GetRemoteIDByHash retrieves the remote document id stored for a content
// hash (deduplication).
func (c *ClICtrl) GetRemoteIDByHash(ctx context.Context, fileHash string) (string, error) {
	value, err := c.GetValue(ctx, model.FileHashes, []byte(fileHash))
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// SaveFileHash saves the mapping from content hash to remote document id.
func (c *ClICtrl) SaveFileHash(ctx context.Context, fileHash string, remoteID string) error {
	return c.PutValue(ctx, model.FileHashes, []byte(fileHash), []byte(remoteID))
}

// watchStateKey is the kv config key holding the watcher state.
const watchStateKey = "watchState"

// SaveWatchState persists the watcher state for the account in context.
func (c *ClICtrl) SaveWatchState(ctx context.Context, state *model.WatchState) error {
	value, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal watch state: %w", err)
	}
	return c.PutValue(ctx, model.KVConfig, []byte(watchStateKey), value)
}

// LoadWatchState returns the saved watcher state, or nil when none exists.
func (c *ClICtrl) LoadWatchState(ctx context.Context) (*model.WatchState, error) {
	value, err := c.GetValue(ctx, model.KVConfig, []byte(watchStateKey))
	if err != nil || value == nil {
		return nil, err
	}
	var state model.WatchState
	if err := json.Unmarshal(value, &state); err != nil {
		return nil, fmt.Errorf("failed to parse watch state: %w", err)
	}
	return &state, nil
}
