package queue

import (
	"context"
)

// Storage persists the hash -> remote id mapping used for deduplication.
type Storage interface {
	GetRemoteIDByHash(ctx context.Context, fileHash string) (string, error)
	SaveFileHash(ctx context.Context, fileHash string, remoteID string) error
}
