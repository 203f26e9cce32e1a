package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mediacuts/cli/pkg/model"
	"github.com/mediacuts/cli/pkg/queue"
)

// Storage persists the watcher's state between runs.
type Storage interface {
	SaveWatchState(ctx context.Context, state *model.WatchState) error
}

// Watcher orchestrates folder watching and document uploads. Every stable
// file under the watched tree is sent to one destination project.
type Watcher struct {
	ctx           context.Context
	transfer      queue.Transferer
	notify        queue.Notifier
	storage       Storage
	state         *model.WatchState
	config        model.UploadConfig
	fileWatcher   *FileWatcher
	debounceQueue *DebounceQueue
	uploadWorkers sync.WaitGroup

	processingMu sync.Mutex
	processing   map[string]bool
}

// NewWatcher creates a watcher uploading into the project named in state.
func NewWatcher(ctx context.Context, transfer queue.Transferer, notify queue.Notifier, storage Storage, state *model.WatchState) (*Watcher, error) {
	if state.WatchPath == "" {
		return nil, fmt.Errorf("no watch path configured")
	}
	if state.ProjectKey == "" {
		return nil, queue.ErrNoProject
	}

	w := &Watcher{
		ctx:      ctx,
		transfer: transfer,
		notify:   notify,
		storage:  storage,
		state:    state,
		config: model.UploadConfig{
			ProjectKey:  state.ProjectKey,
			ProjectName: state.ProjectName,
		},
		processing: make(map[string]bool),
	}

	debounce := time.Duration(state.DebounceMs) * time.Millisecond
	w.debounceQueue = NewDebounceQueue(debounce)

	fileWatcher, err := NewFileWatcher(w.onFileEvent, w.onNewDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.fileWatcher = fileWatcher

	return w, nil
}

// Start begins watching the folder.
func (w *Watcher) Start() error {
	if err := w.fileWatcher.AddRecursive(w.state.WatchPath); err != nil {
		return fmt.Errorf("failed to add watch path: %w", err)
	}
	w.fileWatcher.Start()

	fmt.Printf("Watching folder: %s\n", w.state.WatchPath)
	fmt.Printf("Project: %s\n", w.config.ProjectName)
	fmt.Printf("Debounce: %dms\n", w.state.DebounceMs)
	fmt.Println("\nPress Ctrl+C to stop watching...")

	return nil
}

// PerformInitialScan uploads the files already present under the watch path.
func (w *Watcher) PerformInitialScan() error {
	fmt.Println("Performing initial scan...")

	var files []string
	err := filepath.Walk(w.state.WatchPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if !info.IsDir() && !isTransientFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("initial scan failed: %w", err)
	}

	fmt.Printf("Found %d file(s) in initial scan\n", len(files))
	for _, file := range files {
		w.processFile(file)
	}
	return nil
}

func (w *Watcher) onFileEvent(filePath string) {
	w.debounceQueue.Add(filePath, func(path string) {
		w.processFile(path)
	})
}

func (w *Watcher) onNewDirectory(dirPath string) {
	fmt.Printf("New directory detected: %s\n", filepath.Base(dirPath))
}

// processFile uploads one file on its own goroutine. A file already being
// processed is skipped.
func (w *Watcher) processFile(filePath string) {
	w.processingMu.Lock()
	if w.processing[filePath] {
		w.processingMu.Unlock()
		return
	}
	w.processing[filePath] = true
	w.processingMu.Unlock()

	w.uploadWorkers.Add(1)
	go func() {
		defer w.uploadWorkers.Done()
		defer func() {
			w.processingMu.Lock()
			delete(w.processing, filePath)
			w.processingMu.Unlock()
		}()

		w.uploadFile(filePath)

		w.state.LastProcessed = time.Now().Unix()
		if err := w.storage.SaveWatchState(w.ctx, w.state); err != nil {
			fmt.Printf("Warning: failed to save watch state: %v\n", err)
		}
	}()
}

func (w *Watcher) uploadFile(filePath string) {
	task := model.UploadTask{
		LocalID: uuid.NewString(),
		Name:    filepath.Base(filePath),
		Path:    filePath,
		Status:  model.UploadStatusUploading,
	}
	if info, err := os.Stat(filePath); err == nil {
		task.Size = info.Size()
	}

	result, err := w.transfer.Transfer(w.ctx, w.config, task)
	if err != nil {
		task.Status = model.UploadStatusError
		task.Err = err.Error()
		if w.notify != nil {
			w.notify.UploadFailed(task, err)
		}
		return
	}

	task.Status = model.UploadStatusSuccess
	task.RemoteID = result.RemoteID
	task.Skipped = result.Skipped
	if w.notify != nil {
		w.notify.UploadSucceeded(task)
	}
}

// Shutdown stops watching and waits for in-flight uploads, with a timeout.
func (w *Watcher) Shutdown() error {
	fmt.Println("\nShutting down watcher...")

	w.fileWatcher.Close()
	w.debounceQueue.Stop()

	done := make(chan struct{})
	go func() {
		w.uploadWorkers.Wait()
		close(done)
	}()

	select {
	case <-done:
		fmt.Println("All uploads completed")
	case <-time.After(30 * time.Second):
		fmt.Println("Shutdown timeout - some uploads may be incomplete")
	}

	if err := w.storage.SaveWatchState(w.ctx, w.state); err != nil {
		return fmt.Errorf("failed to save watch state: %w", err)
	}
	return nil
}
