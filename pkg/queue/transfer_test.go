package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mediacuts/cli/internal/api"
	"github.com/mediacuts/cli/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage is an in-memory hash -> remote id mapping.
type memStorage struct {
	mu     sync.Mutex
	hashes map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{hashes: make(map[string]string)}
}

func (m *memStorage) GetRemoteIDByHash(ctx context.Context, fileHash string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hashes[fileHash], nil
}

func (m *memStorage) SaveFileHash(ctx context.Context, fileHash, remoteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hashes[fileHash] = remoteID
	return nil
}

func uploadServer(t *testing.T, uploads *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload-video", r.URL.Path)
		*uploads++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"video_id": "remote-%d"}`, *uploads)
	}))
}

func TestTransferUploadsAndStoresHash(t *testing.T) {
	var uploads int
	server := uploadServer(t, &uploads)
	defer server.Close()

	client := api.NewClient(api.Params{BaseURL: server.URL})
	storage := newMemStorage()
	transfer := NewAPITransferer(client, storage)

	path := writeTempFile(t, "a.pdf", 64)
	task := model.UploadTask{LocalID: "t1", Name: "a.pdf", Path: path}
	config := model.UploadConfig{ProjectKey: "proj"}

	result, err := transfer.Transfer(context.Background(), config, task)
	require.NoError(t, err)
	assert.Equal(t, "remote-1", result.RemoteID)
	assert.False(t, result.Skipped)
	assert.Equal(t, 1, uploads)

	hash, err := ComputeFileHash(path)
	require.NoError(t, err)
	stored, _ := storage.GetRemoteIDByHash(context.Background(), hash)
	assert.Equal(t, "remote-1", stored)
}

func TestTransferSkipsKnownContent(t *testing.T) {
	var uploads int
	server := uploadServer(t, &uploads)
	defer server.Close()

	client := api.NewClient(api.Params{BaseURL: server.URL})
	storage := newMemStorage()
	transfer := NewAPITransferer(client, storage)

	path := writeTempFile(t, "a.pdf", 64)
	hash, err := ComputeFileHash(path)
	require.NoError(t, err)
	require.NoError(t, storage.SaveFileHash(context.Background(), hash, "remote-old"))

	task := model.UploadTask{LocalID: "t1", Name: "a.pdf", Path: path}
	result, err := transfer.Transfer(context.Background(), model.UploadConfig{ProjectKey: "proj"}, task)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, "remote-old", result.RemoteID)
	assert.Zero(t, uploads, "known content must not touch the network")
}

func TestTransferForceBypassesDedup(t *testing.T) {
	var uploads int
	server := uploadServer(t, &uploads)
	defer server.Close()

	client := api.NewClient(api.Params{BaseURL: server.URL})
	storage := newMemStorage()
	transfer := NewAPITransferer(client, storage)

	path := writeTempFile(t, "a.pdf", 64)
	hash, err := ComputeFileHash(path)
	require.NoError(t, err)
	require.NoError(t, storage.SaveFileHash(context.Background(), hash, "remote-old"))

	task := model.UploadTask{LocalID: "t1", Name: "a.pdf", Path: path}
	result, err := transfer.Transfer(context.Background(), model.UploadConfig{ProjectKey: "proj", Force: true}, task)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, "remote-1", result.RemoteID)
	assert.Equal(t, 1, uploads)
}

func TestTransferSendsProjectMetadata(t *testing.T) {
	var meta api.UploadMetadata
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("metadata")), &meta))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"video_id": "r1"}`)
	}))
	defer server.Close()

	client := api.NewClient(api.Params{BaseURL: server.URL})
	transfer := NewAPITransferer(client, nil)

	path := writeTempFile(t, "a.pdf", 16)
	task := model.UploadTask{LocalID: "t1", Name: "a.pdf", Path: path}

	// Display name falls back to the key when not set.
	_, err := transfer.Transfer(context.Background(), model.UploadConfig{ProjectKey: "proj-key"}, task)
	require.NoError(t, err)
	assert.Equal(t, "proj-key", meta.ProjectName)

	_, err = transfer.Transfer(context.Background(), model.UploadConfig{ProjectKey: "proj-key", ProjectName: "Pretty Name"}, task)
	require.NoError(t, err)
	assert.Equal(t, "Pretty Name", meta.ProjectName)
}

func TestComputeFileHashIsStable(t *testing.T) {
	path := writeTempFile(t, "a.bin", 128)
	first, err := ComputeFileHash(path)
	require.NoError(t, err)
	second, err := ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)

	other, err := ComputeFileHash(writeTempFile(t, "b.bin", 127))
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}
