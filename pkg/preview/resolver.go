// Package preview resolves a remote document into displayable content:
// inline text, pretty-printed JSON, a binary handle, or an explicit
// "nothing to show" state.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mediacuts/cli/internal/api"
	"github.com/mediacuts/cli/pkg/model"
)

// Kind tags what a resolved preview holds.
type Kind int

const (
	KindUnavailable Kind = iota // nothing to show; not an error
	KindText
	KindJSON
	KindBinary
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindJSON:
		return "json"
	case KindBinary:
		return "binary"
	case KindError:
		return "error"
	default:
		return "unavailable"
	}
}

// ErrNoContent is returned by content actions when the state holds no
// content of the requested form.
var ErrNoContent = fmt.Errorf("no preview content")

// State is one resolved preview. Exactly one of Text, Binary or Err is
// populated; a zero State with KindUnavailable means "nothing to show".
type State struct {
	Title  string
	Kind   Kind
	Text   string        // set for KindText and KindJSON
	Binary *BinaryHandle // set for KindBinary
	Err    string        // set for KindError
}

// Close releases any binary handle held by the state. Closing twice releases
// the handle exactly once.
func (s *State) Close() {
	if s.Binary != nil {
		s.Binary.Release()
	}
}

// CopyText returns the textual content for clipboard-style actions. The
// action is unavailable (ErrNoContent) unless text was resolved.
func (s *State) CopyText() (string, error) {
	if s.Kind != KindText && s.Kind != KindJSON {
		return "", ErrNoContent
	}
	return s.Text, nil
}

// SaveTo writes the resolved content to path. Available for both text and
// binary states; unavailable otherwise.
func (s *State) SaveTo(path string) error {
	switch s.Kind {
	case KindText, KindJSON:
		if err := os.WriteFile(path, []byte(s.Text), 0o644); err != nil {
			return fmt.Errorf("failed to save preview: %w", err)
		}
		return nil
	case KindBinary:
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to save preview: %w", err)
		}
		defer f.Close()
		return s.Binary.CopyTo(f)
	default:
		return ErrNoContent
	}
}

// Fetcher is the remote collaborator previews are resolved against.
type Fetcher interface {
	FetchContent(ctx context.Context, projectKey, documentID string) (*api.Content, error)
	GetPreviewURL(ctx context.Context, projectKey, documentID string) (*api.PreviewResponse, error)
	FetchURL(ctx context.Context, absoluteURL string) (*api.Content, error)
}

// Resolver turns document references into preview states.
type Resolver struct {
	fetcher Fetcher
}

// NewResolver creates a resolver using the given content collaborator.
func NewResolver(fetcher Fetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve fetches a document's content and decides how to present it. The
// primary content endpoint is tried first; on a rejected response the
// indirect preview URL is the fallback. Preview is attempted regardless of
// the document's status and may legitimately come back unavailable.
func (r *Resolver) Resolve(ctx context.Context, projectKey string, doc model.Document) *State {
	state := &State{Title: doc.DisplayName}

	content, err := r.fetcher.FetchContent(ctx, projectKey, doc.RemoteID)
	if err != nil {
		if _, ok := err.(*api.ApiError); ok {
			// Response received but rejected: the document may still be
			// previewable through the indirect URL.
			return r.resolveFallback(ctx, projectKey, doc, state)
		}
		state.Kind = KindError
		state.Err = err.Error()
		return state
	}

	contentType := strings.ToLower(content.ContentType)
	switch {
	case strings.Contains(contentType, "application/json"):
		state.Text = prettyJSON(content.Body)
		if json.Valid(content.Body) {
			state.Kind = KindJSON
		} else {
			// Declared JSON that does not parse falls back to raw text.
			state.Kind = KindText
		}
	case strings.Contains(contentType, "text"):
		state.Kind = KindText
		state.Text = string(content.Body)
	default:
		handle, err := newBinaryHandle(content.Body, doc.DisplayName)
		if err != nil {
			state.Kind = KindError
			state.Err = err.Error()
			return state
		}
		state.Kind = KindBinary
		state.Binary = handle
	}
	return state
}

// resolveFallback tries the preview-URL endpoint after the primary content
// fetch was rejected.
func (r *Resolver) resolveFallback(ctx context.Context, projectKey string, doc model.Document, state *State) *State {
	resp, err := r.fetcher.GetPreviewURL(ctx, projectKey, doc.RemoteID)
	if err != nil || resp == nil || resp.PreviewURL == "" {
		state.Kind = KindUnavailable
		state.Err = ""
		return state
	}

	content, err := r.fetcher.FetchURL(ctx, resp.PreviewURL)
	if err != nil {
		state.Kind = KindUnavailable
		return state
	}

	name := resp.Filename
	if name == "" {
		name = doc.DisplayName
	}
	handle, err := newBinaryHandle(content.Body, name)
	if err != nil {
		state.Kind = KindError
		state.Err = err.Error()
		return state
	}
	state.Kind = KindBinary
	state.Binary = handle
	return state
}

// prettyJSON re-serializes a JSON body with stable two-space indentation.
// Invalid JSON comes back verbatim.
func prettyJSON(body []byte) string {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return string(body)
	}
	pretty, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return string(body)
	}
	return string(pretty)
}
