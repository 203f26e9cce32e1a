package queue

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mediacuts/cli/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransferer records calls and returns a scripted result per file name.
type fakeTransferer struct {
	mu      sync.Mutex
	calls   []string
	results map[string]TransferResult
	errs    map[string]error
}

func (f *fakeTransferer) Transfer(ctx context.Context, config model.UploadConfig, task model.UploadTask) (TransferResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, task.Name)
	f.mu.Unlock()

	if err, ok := f.errs[task.Name]; ok {
		return TransferResult{}, err
	}
	if result, ok := f.results[task.Name]; ok {
		return result, nil
	}
	return TransferResult{RemoteID: "remote-" + task.Name}, nil
}

func (f *fakeTransferer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeNotifier struct {
	mu        sync.Mutex
	succeeded []string
	failed    []string
}

func (f *fakeNotifier) UploadSucceeded(task model.UploadTask) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.succeeded = append(f.succeeded, task.Name)
}

func (f *fakeNotifier) UploadFailed(task model.UploadTask, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed = append(f.failed, task.Name)
}

func writeTempFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestEnqueueCreatesPendingTasks(t *testing.T) {
	q := New(&fakeTransferer{}, nil)

	a := writeTempFile(t, "a.pdf", 100)
	b := writeTempFile(t, "b.mp4", 200)
	ids := q.Enqueue(a, b)

	require.Len(t, ids, 2)
	tasks := q.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "a.pdf", tasks[0].Name)
	assert.Equal(t, int64(100), tasks[0].Size)
	assert.Equal(t, model.UploadStatusPending, tasks[0].Status)
	assert.Equal(t, "b.mp4", tasks[1].Name)
	assert.NotEqual(t, tasks[0].LocalID, tasks[1].LocalID)
}

func TestRemove(t *testing.T) {
	q := New(&fakeTransferer{}, nil)
	ids := q.Enqueue(writeTempFile(t, "a.pdf", 10), writeTempFile(t, "b.pdf", 10))

	q.Remove(ids[0])
	assert.Equal(t, 1, q.Len())

	// Removing an unknown id is a no-op.
	q.Remove("does-not-exist")
	assert.Equal(t, 1, q.Len())
}

func TestRemoveWhileUploadingIsNoOp(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	transfer := transferFunc(func(ctx context.Context, config model.UploadConfig, task model.UploadTask) (TransferResult, error) {
		close(started)
		<-release
		return TransferResult{RemoteID: "r1"}, nil
	})

	q := New(transfer, nil)
	ids := q.Enqueue(writeTempFile(t, "a.pdf", 10))

	done := make(chan error)
	go func() {
		done <- q.StartAll(context.Background(), model.UploadConfig{ProjectKey: "proj"})
	}()

	<-started
	q.Remove(ids[0])
	assert.Equal(t, 1, q.Len(), "in-flight task must survive removal")

	close(release)
	require.NoError(t, <-done)

	tasks := q.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, model.UploadStatusSuccess, tasks[0].Status)
}

type transferFunc func(ctx context.Context, config model.UploadConfig, task model.UploadTask) (TransferResult, error)

func (f transferFunc) Transfer(ctx context.Context, config model.UploadConfig, task model.UploadTask) (TransferResult, error) {
	return f(ctx, config, task)
}

func TestStartAllRequiresProject(t *testing.T) {
	transfer := &fakeTransferer{}
	q := New(transfer, nil)
	q.Enqueue(writeTempFile(t, "a.pdf", 10))

	err := q.StartAll(context.Background(), model.UploadConfig{})
	require.ErrorIs(t, err, ErrNoProject)
	assert.Zero(t, transfer.callCount(), "no transfers may start without a project")

	tasks := q.Tasks()
	assert.Equal(t, model.UploadStatusPending, tasks[0].Status)
}

func TestStartAllWithNothingPending(t *testing.T) {
	transfer := &fakeTransferer{}
	notify := &fakeNotifier{}
	q := New(transfer, notify)

	require.NoError(t, q.StartAll(context.Background(), model.UploadConfig{ProjectKey: "proj"}))
	assert.Zero(t, transfer.callCount())
	assert.Empty(t, notify.succeeded)
	assert.Empty(t, notify.failed)
}

func TestStartAllFailuresAreIsolated(t *testing.T) {
	transfer := &fakeTransferer{
		errs: map[string]error{"bad.pdf": fmt.Errorf("server rejected it")},
	}
	notify := &fakeNotifier{}
	q := New(transfer, notify)
	q.Enqueue(
		writeTempFile(t, "good.pdf", 100),
		writeTempFile(t, "bad.pdf", 100),
		writeTempFile(t, "also-good.pdf", 100),
	)

	require.NoError(t, q.StartAll(context.Background(), model.UploadConfig{ProjectKey: "proj"}))

	byName := make(map[string]model.UploadTask)
	for _, task := range q.Tasks() {
		byName[task.Name] = task
	}
	assert.Equal(t, model.UploadStatusSuccess, byName["good.pdf"].Status)
	assert.Equal(t, "remote-good.pdf", byName["good.pdf"].RemoteID)
	assert.Equal(t, model.UploadStatusError, byName["bad.pdf"].Status)
	assert.Equal(t, "server rejected it", byName["bad.pdf"].Err)
	assert.Equal(t, model.UploadStatusSuccess, byName["also-good.pdf"].Status)

	assert.ElementsMatch(t, []string{"good.pdf", "also-good.pdf"}, notify.succeeded)
	assert.ElementsMatch(t, []string{"bad.pdf"}, notify.failed)
}

func TestStartAllOnlyTouchesPending(t *testing.T) {
	transfer := &fakeTransferer{}
	q := New(transfer, nil)
	q.Enqueue(writeTempFile(t, "a.pdf", 10))

	require.NoError(t, q.StartAll(context.Background(), model.UploadConfig{ProjectKey: "proj"}))
	require.Equal(t, 1, transfer.callCount())

	// A second run has nothing pending and transfers nothing.
	require.NoError(t, q.StartAll(context.Background(), model.UploadConfig{ProjectKey: "proj"}))
	assert.Equal(t, 1, transfer.callCount())
}

func TestSummary(t *testing.T) {
	transfer := &fakeTransferer{
		results: map[string]TransferResult{
			"dup.pdf": {RemoteID: "r-dup", Skipped: true},
		},
		errs: map[string]error{"bad.pdf": fmt.Errorf("boom")},
	}
	q := New(transfer, nil)
	q.Enqueue(
		writeTempFile(t, "ok.pdf", 300),
		writeTempFile(t, "dup.pdf", 500),
		writeTempFile(t, "bad.pdf", 100),
	)

	require.NoError(t, q.StartAll(context.Background(), model.UploadConfig{ProjectKey: "proj"}))

	s := q.Summary()
	assert.Equal(t, 3, s.TotalFiles)
	assert.Equal(t, 1, s.CompletedFiles)
	assert.Equal(t, 1, s.SkippedFiles)
	assert.Equal(t, 1, s.FailedFiles)
	assert.Equal(t, 0, s.PendingFiles)
	assert.Equal(t, int64(300), s.UploadedBytes, "skipped files contribute no bytes")
	require.Len(t, s.Errors, 1)
	assert.Equal(t, "bad.pdf", s.Errors[0].FileName)
	assert.Equal(t, "boom", s.Errors[0].Message)
}
