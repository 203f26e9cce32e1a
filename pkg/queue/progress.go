package queue

import (
	"fmt"
	"sync"
	"time"

	"github.com/mediacuts/cli/pkg/filetype"
)

// ProgressTracker tracks upload progress across multiple files.
type ProgressTracker struct {
	totalFiles     int
	completedFiles int
	failedFiles    int
	skippedFiles   int
	totalBytes     int64
	uploadedBytes  int64
	startTime      time.Time
	mu             sync.RWMutex
}

// NewProgressTracker creates a new progress tracker.
func NewProgressTracker(totalFiles int, totalBytes int64) *ProgressTracker {
	return &ProgressTracker{
		totalFiles: totalFiles,
		totalBytes: totalBytes,
		startTime:  time.Now(),
	}
}

// AddCompletedFile increments the completed file counter.
func (p *ProgressTracker) AddCompletedFile() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completedFiles++
}

// AddFailedFile increments the failed file counter.
func (p *ProgressTracker) AddFailedFile() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failedFiles++
}

// AddSkippedFile increments the skipped file counter (duplicates).
func (p *ProgressTracker) AddSkippedFile() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.skippedFiles++
}

// AddUploadedBytes adds to the uploaded bytes counter.
func (p *ProgressTracker) AddUploadedBytes(bytes int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uploadedBytes += bytes
}

// Render returns a one-line progress string.
func (p *ProgressTracker) Render() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	processed := p.completedFiles + p.failedFiles + p.skippedFiles

	var percent float64
	if p.totalBytes > 0 {
		percent = float64(p.uploadedBytes) / float64(p.totalBytes) * 100
	} else if p.totalFiles > 0 {
		percent = float64(processed) / float64(p.totalFiles) * 100
	}

	barWidth := 30
	filled := int(percent * float64(barWidth) / 100)
	if filled > barWidth {
		filled = barWidth
	}
	bar := ""
	for i := 0; i < barWidth; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}

	status := fmt.Sprintf("[%d/%d] [%s] %.1f%% (%s / %s)",
		processed, p.totalFiles, bar, percent,
		filetype.FormatBytes(p.uploadedBytes), filetype.FormatBytes(p.totalBytes))

	if p.failedFiles > 0 {
		status += fmt.Sprintf(" | %d failed", p.failedFiles)
	}
	if p.skippedFiles > 0 {
		status += fmt.Sprintf(" | %d skipped", p.skippedFiles)
	}

	return status
}

// SummaryLine returns a human-readable wrap-up of the session.
func (p *ProgressTracker) SummaryLine() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	elapsed := time.Since(p.startTime).Round(time.Second)
	summary := fmt.Sprintf("Upload complete in %s\n", elapsed)
	summary += fmt.Sprintf("  Completed: %d\n", p.completedFiles)
	if p.skippedFiles > 0 {
		summary += fmt.Sprintf("  Skipped (duplicates): %d\n", p.skippedFiles)
	}
	if p.failedFiles > 0 {
		summary += fmt.Sprintf("  Failed: %d\n", p.failedFiles)
	}
	summary += fmt.Sprintf("  Total uploaded: %s", filetype.FormatBytes(p.uploadedBytes))
	return summary
}
