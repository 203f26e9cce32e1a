package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher wraps fsnotify.Watcher and tracks a recursively watched tree.
// New subdirectories are added to the watch list as they appear.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	onFile   func(string)
	onNewDir func(string)
	mu       sync.Mutex
	watched  map[string]bool
	closed   bool
}

// NewFileWatcher creates a FileWatcher with the given callbacks.
func NewFileWatcher(onFile func(string), onNewDir func(string)) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &FileWatcher{
		watcher:  watcher,
		onFile:   onFile,
		onNewDir: onNewDir,
		watched:  make(map[string]bool),
	}, nil
}

// AddRecursive adds a directory and all its subdirectories to the watch list.
// Inaccessible subtrees are skipped.
func (fw *FileWatcher) AddRecursive(rootPath string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() || fw.watched[path] {
			return nil
		}
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		fw.watched[path] = true
		return nil
	})
}

func (fw *FileWatcher) addDirectory(dirPath string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.watched[dirPath] {
		return nil
	}
	if err := fw.watcher.Add(dirPath); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dirPath, err)
	}
	fw.watched[dirPath] = true
	return nil
}

// Start begins dispatching file system events.
func (fw *FileWatcher) Start() {
	go fw.eventLoop()
}

func (fw *FileWatcher) eventLoop() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fmt.Printf("Watch error: %v\n", err)
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	// Renames surface as CREATE, so CREATE and WRITE together cover new and
	// changed files.
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// File may have been deleted between event and stat.
		return
	}

	if info.IsDir() {
		if err := fw.addDirectory(event.Name); err != nil {
			fmt.Printf("Failed to watch new directory %s: %v\n", event.Name, err)
			return
		}
		if fw.onNewDir != nil {
			fw.onNewDir(event.Name)
		}
		return
	}

	if isTransientFile(event.Name) {
		return
	}

	if fw.onFile != nil {
		fw.onFile(event.Name)
	}
}

// Close stops the file watcher.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return nil
	}
	fw.closed = true
	return fw.watcher.Close()
}

// isTransientFile reports whether a path looks like an editor or OS scratch
// file that should not be uploaded.
func isTransientFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~") {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tmp", ".part", ".crdownload", ".swp":
		return true
	}
	return false
}
