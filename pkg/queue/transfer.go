package queue

import (
	"context"
	"fmt"

	"github.com/mediacuts/cli/internal/api"
	"github.com/mediacuts/cli/pkg/model"
)

// APITransferer uploads tasks through the remote API, with local
// deduplication against previously uploaded content.
type APITransferer struct {
	client  *api.Client
	storage Storage
}

// NewAPITransferer creates a transferer backed by the API client. storage may
// be nil, which disables deduplication.
func NewAPITransferer(client *api.Client, storage Storage) *APITransferer {
	return &APITransferer{client: client, storage: storage}
}

// Transfer uploads one task's file via multipart POST. When the content hash
// is already mapped locally and Force is off, the stored remote id is reused
// without touching the network.
func (t *APITransferer) Transfer(ctx context.Context, config model.UploadConfig, task model.UploadTask) (TransferResult, error) {
	var fileHash string
	if t.storage != nil {
		hash, err := ComputeFileHash(task.Path)
		if err != nil {
			return TransferResult{}, err
		}
		fileHash = hash

		if !config.Force {
			remoteID, found, err := CheckLocalDuplicate(ctx, t.storage, fileHash)
			if err != nil {
				return TransferResult{}, err
			}
			if found {
				return TransferResult{RemoteID: remoteID, Skipped: true}, nil
			}
		}
	}

	projectName := config.ProjectName
	if projectName == "" {
		projectName = config.ProjectKey
	}

	resp, err := t.client.UploadDocument(ctx, task.Path, api.UploadMetadata{
		ProjectName: projectName,
		TypeProject: string(model.ProjectKindFiles),
	})
	if err != nil {
		return TransferResult{}, fmt.Errorf("upload failed: %w", err)
	}

	if t.storage != nil && fileHash != "" {
		if err := StoreHashMapping(ctx, t.storage, fileHash, resp.VideoID); err != nil {
			// Non-fatal: the upload itself succeeded.
			fmt.Printf("Warning: failed to store hash mapping: %v\n", err)
		}
	}

	return TransferResult{RemoteID: resp.VideoID}, nil
}
