package watcher

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebounceFiresOnceAfterQuiet(t *testing.T) {
	q := NewDebounceQueue(30 * time.Millisecond)
	defer q.Stop()

	var mu sync.Mutex
	var fired []string
	callback := func(path string) {
		mu.Lock()
		fired = append(fired, path)
		mu.Unlock()
	}

	// Rapid re-adds reset the timer, so only one callback fires.
	q.Add("/tmp/a.txt", callback)
	q.Add("/tmp/a.txt", callback)
	q.Add("/tmp/a.txt", callback)
	assert.Equal(t, 1, q.Pending())

	time.Sleep(120 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/tmp/a.txt"}, fired)
	assert.Equal(t, 0, q.Pending())
}

func TestDebounceTracksPathsIndependently(t *testing.T) {
	q := NewDebounceQueue(20 * time.Millisecond)
	defer q.Stop()

	var mu sync.Mutex
	fired := make(map[string]int)
	callback := func(path string) {
		mu.Lock()
		fired[path]++
		mu.Unlock()
	}

	q.Add("/tmp/a.txt", callback)
	q.Add("/tmp/b.txt", callback)
	assert.Equal(t, 2, q.Pending())

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, fired["/tmp/a.txt"])
	assert.Equal(t, 1, fired["/tmp/b.txt"])
}

func TestStopCancelsPending(t *testing.T) {
	q := NewDebounceQueue(30 * time.Millisecond)

	var mu sync.Mutex
	count := 0
	q.Add("/tmp/a.txt", func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	q.Stop()
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, count)
	assert.Zero(t, q.Pending())
}

func TestIsTransientFile(t *testing.T) {
	assert.True(t, isTransientFile("/watch/.hidden"))
	assert.True(t, isTransientFile("/watch/~lock.docx"))
	assert.True(t, isTransientFile("/watch/download.part"))
	assert.True(t, isTransientFile("/watch/video.MP4.tmp"))
	assert.False(t, isTransientFile("/watch/report.pdf"))
	assert.False(t, isTransientFile("/watch/clip.mp4"))
}
