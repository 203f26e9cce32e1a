// Package secrets stores session credentials in the system keyring, with a
// local bolt bucket as fallback for machines without one.
package secrets

import (
	"fmt"

	"github.com/zalando/go-keyring"
	bolt "go.etcd.io/bbolt"
)

const (
	keyringService = "mediacuts-cli"

	fallbackBucket = "sessionFallback"
)

// SessionStore persists one session secret per account email.
type SessionStore struct {
	db             *bolt.DB
	disableKeyring bool
}

// NewSessionStore creates a store backed by the keyring with db as fallback.
func NewSessionStore(db *bolt.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Save stores the session secret for an account.
func (s *SessionStore) Save(email, secret string) error {
	if !s.disableKeyring {
		if err := keyring.Set(keyringService, email, secret); err == nil {
			return nil
		}
		// Keyring unavailable on this machine; remember that and fall back.
		s.disableKeyring = true
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(fallbackBucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(email), []byte(secret))
	})
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Load returns the stored session secret, or empty when none exists.
func (s *SessionStore) Load(email string) (string, error) {
	if !s.disableKeyring {
		if secret, err := keyring.Get(keyringService, email); err == nil {
			return secret, nil
		} else if err != keyring.ErrNotFound {
			s.disableKeyring = true
		} else {
			return "", nil
		}
	}
	var secret string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(fallbackBucket))
		if b == nil {
			return nil
		}
		secret = string(b.Get([]byte(email)))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return secret, nil
}

// Clear removes the stored session secret. Missing entries are not an error.
func (s *SessionStore) Clear(email string) error {
	if err := keyring.Delete(keyringService, email); err != nil && err != keyring.ErrNotFound {
		// Fall through to the bolt fallback either way.
		s.disableKeyring = true
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(fallbackBucket))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(email))
	})
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
