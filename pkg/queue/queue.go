// Package queue manages a session's upload tasks: enqueueing local files,
// firing their transfers concurrently and tracking per-task status.
package queue

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/mediacuts/cli/pkg/model"
)

// ErrNoProject is returned by StartAll when no destination project was
// selected. No transfers are attempted in that case.
var ErrNoProject = fmt.Errorf("no project selected")

// TransferResult is the outcome of one successful transfer.
type TransferResult struct {
	RemoteID string
	Skipped  bool // satisfied from the local dedup mapping, nothing sent
}

// Transferer moves one task's bytes to the remote API and returns the
// server-assigned document id.
type Transferer interface {
	Transfer(ctx context.Context, config model.UploadConfig, task model.UploadTask) (TransferResult, error)
}

// Notifier receives one user-visible notification per completed transfer.
type Notifier interface {
	UploadSucceeded(task model.UploadTask)
	UploadFailed(task model.UploadTask, err error)
}

// Queue holds the session's upload tasks, keyed by local id. Completion
// callbacks from concurrent transfers mutate only their own task's fields,
// so a single mutex around the map is enough; there are no read-modify-write
// races on shared aggregates (summaries are rederived from the map).
type Queue struct {
	mu       sync.Mutex
	tasks    map[string]*model.UploadTask
	order    []string
	transfer Transferer
	notify   Notifier
	progress *ProgressTracker
}

// New creates an empty queue using the given transfer collaborator and
// notifier.
func New(transfer Transferer, notify Notifier) *Queue {
	return &Queue{
		tasks:    make(map[string]*model.UploadTask),
		transfer: transfer,
		notify:   notify,
	}
}

// Enqueue appends one pending task per path. Nothing is validated here: the
// server is the source of truth for what it accepts.
func (q *Queue) Enqueue(paths ...string) []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids := make([]string, 0, len(paths))
	for _, path := range paths {
		var size int64
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}
		task := &model.UploadTask{
			LocalID: uuid.NewString(),
			Name:    filepath.Base(path),
			Path:    path,
			Size:    size,
			Status:  model.UploadStatusPending,
		}
		q.tasks[task.LocalID] = task
		q.order = append(q.order, task.LocalID)
		ids = append(ids, task.LocalID)
	}
	return ids
}

// Remove drops a task from the queue. Removing a task that is mid-transfer
// is a silent no-op: in-flight transfers are not cancellable.
func (q *Queue) Remove(localID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	task, ok := q.tasks[localID]
	if !ok || task.Status == model.UploadStatusUploading {
		return
	}
	delete(q.tasks, localID)
	for i, id := range q.order {
		if id == localID {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
}

// StartAll transitions every pending task to uploading and fires all their
// transfers concurrently, then waits for every one of them. There is no cap
// on simultaneous transfers; batches are expected to be small (one user's
// session). A failed task never aborts its siblings, and StartAll returns
// nil even when individual tasks failed - failures live in task state and
// per-task notifications.
func (q *Queue) StartAll(ctx context.Context, config model.UploadConfig) error {
	if config.ProjectKey == "" {
		return ErrNoProject
	}

	pending := q.takePending()
	if len(pending) == 0 {
		return nil
	}

	q.mu.Lock()
	var totalBytes int64
	for _, t := range pending {
		totalBytes += t.Size
	}
	q.progress = NewProgressTracker(len(pending), totalBytes)
	q.mu.Unlock()

	var wg sync.WaitGroup
	for _, task := range pending {
		wg.Add(1)
		go func(task model.UploadTask) {
			defer wg.Done()
			q.runTransfer(ctx, config, task)
		}(task)
	}
	wg.Wait()

	return nil
}

// takePending snapshots all pending tasks, marking them uploading.
func (q *Queue) takePending() []model.UploadTask {
	q.mu.Lock()
	defer q.mu.Unlock()

	var pending []model.UploadTask
	for _, id := range q.order {
		task := q.tasks[id]
		if task.Status != model.UploadStatusPending {
			continue
		}
		task.Status = model.UploadStatusUploading
		pending = append(pending, *task)
	}
	return pending
}

// runTransfer performs one task's transfer and records its outcome. Only
// this task's fields are touched, keyed by its local id.
func (q *Queue) runTransfer(ctx context.Context, config model.UploadConfig, task model.UploadTask) {
	result, err := q.transfer.Transfer(ctx, config, task)

	q.mu.Lock()
	stored, ok := q.tasks[task.LocalID]
	if ok {
		if err != nil {
			stored.Status = model.UploadStatusError
			stored.Err = err.Error()
		} else {
			stored.Status = model.UploadStatusSuccess
			stored.Progress = 100
			stored.RemoteID = result.RemoteID
			stored.Skipped = result.Skipped
		}
		task = *stored
	}
	tracker := q.progress
	q.mu.Unlock()

	if tracker != nil {
		switch {
		case err != nil:
			tracker.AddFailedFile()
		case result.Skipped:
			tracker.AddSkippedFile()
		default:
			tracker.AddCompletedFile()
			tracker.AddUploadedBytes(task.Size)
		}
	}

	if q.notify == nil {
		return
	}
	if err != nil {
		q.notify.UploadFailed(task, err)
	} else {
		q.notify.UploadSucceeded(task)
	}
}

// Tasks returns a snapshot of all tasks in enqueue order.
func (q *Queue) Tasks() []model.UploadTask {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]model.UploadTask, 0, len(q.order))
	for _, id := range q.order {
		out = append(out, *q.tasks[id])
	}
	return out
}

// Len returns the number of tasks currently held.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Progress returns the tracker of the last StartAll run, or nil before any.
func (q *Queue) Progress() *ProgressTracker {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.progress
}

// Summary recomputes session statistics from the task map. Counts are always
// rederived rather than incremented to keep concurrent completions honest.
func (q *Queue) Summary() Summary {
	q.mu.Lock()
	defer q.mu.Unlock()

	var s Summary
	for _, task := range q.tasks {
		s.TotalFiles++
		switch task.Status {
		case model.UploadStatusSuccess:
			if task.Skipped {
				s.SkippedFiles++
			} else {
				s.CompletedFiles++
				s.UploadedBytes += task.Size
			}
		case model.UploadStatusError:
			s.FailedFiles++
			s.Errors = append(s.Errors, TaskError{FileName: task.Name, Message: task.Err})
		case model.UploadStatusPending:
			s.PendingFiles++
		}
	}
	return s
}
