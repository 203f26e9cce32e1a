package watcher

import (
	"sync"
	"time"
)

// DebounceQueue delays file callbacks until a file has stopped changing for
// the configured duration. Each new event on the same path resets its timer.
type DebounceQueue struct {
	entries  map[string]*debounceEntry
	duration time.Duration
	mu       sync.Mutex
}

type debounceEntry struct {
	lastWrite time.Time
	timer     *time.Timer
}

// NewDebounceQueue creates a queue with the given debounce duration.
func NewDebounceQueue(duration time.Duration) *DebounceQueue {
	return &DebounceQueue{
		entries:  make(map[string]*debounceEntry),
		duration: duration,
	}
}

// Add schedules the callback for filePath, resetting any pending timer for
// the same path.
func (d *DebounceQueue) Add(filePath string, callback func(string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if entry, exists := d.entries[filePath]; exists {
		entry.timer.Stop()
		delete(d.entries, filePath)
	}

	timer := time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		delete(d.entries, filePath)
		d.mu.Unlock()

		callback(filePath)
	})

	d.entries[filePath] = &debounceEntry{
		lastWrite: time.Now(),
		timer:     timer,
	}
}

// Stop cancels all pending timers and clears the queue.
func (d *DebounceQueue) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, entry := range d.entries {
		entry.timer.Stop()
	}
	d.entries = make(map[string]*debounceEntry)
}

// Pending returns the number of files currently waiting out their debounce.
func (d *DebounceQueue) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}
