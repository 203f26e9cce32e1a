package queue

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/minio/blake2b-simd"
)

// ComputeFileHash computes the BLAKE2b-256 hash of a file's content.
func ComputeFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := blake2b.New256()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to compute hash: %w", err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// CheckLocalDuplicate looks up a file hash in the local mapping. A hit means
// the exact content was already uploaded from this machine.
func CheckLocalDuplicate(ctx context.Context, storage Storage, hash string) (remoteID string, found bool, err error) {
	remoteID, err = storage.GetRemoteIDByHash(ctx, hash)
	if err != nil {
		return "", false, fmt.Errorf("failed to check local duplicate: %w", err)
	}
	if remoteID == "" {
		return "", false, nil
	}
	return remoteID, true, nil
}

// StoreHashMapping saves the hash -> remote id mapping after a successful
// upload.
func StoreHashMapping(ctx context.Context, storage Storage, hash string, remoteID string) error {
	if err := storage.SaveFileHash(ctx, hash, remoteID); err != nil {
		return fmt.Errorf("failed to store hash mapping: %w", err)
	}
	return nil
}
