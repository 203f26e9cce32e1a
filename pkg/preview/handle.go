package preview

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// BinaryHandle is a released-on-close reference to binary preview content
// spilled to a temporary file. Exactly one handle may be live at a time;
// callers must Release it when the preview is dismissed.
type BinaryHandle struct {
	path    string
	name    string
	release sync.Once
}

func newBinaryHandle(data []byte, name string) (*BinaryHandle, error) {
	tmp, err := os.CreateTemp("", "mediacuts-preview-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create preview temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to write preview temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to close preview temp file: %w", err)
	}
	return &BinaryHandle{path: tmp.Name(), name: name}, nil
}

// Path returns the temp file backing the handle.
func (h *BinaryHandle) Path() string {
	return h.path
}

// Name returns the display filename for the content.
func (h *BinaryHandle) Name() string {
	return h.name
}

// CopyTo writes the binary content to w.
func (h *BinaryHandle) CopyTo(w io.Writer) error {
	f, err := os.Open(h.path)
	if err != nil {
		return fmt.Errorf("failed to open preview content: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to copy preview content: %w", err)
	}
	return nil
}

// Release removes the temp file. Releasing twice is safe: the file is
// removed exactly once, and removal failure is silent (cleanup only).
func (h *BinaryHandle) Release() {
	h.release.Do(func() {
		_ = os.Remove(h.path)
	})
}
