package preview

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/mediacuts/cli/internal/api"
	"github.com/mediacuts/cli/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher scripts the three remote calls a resolver can make.
type fakeFetcher struct {
	content    *api.Content
	contentErr error

	previewResp *api.PreviewResponse
	previewErr  error

	urlContent *api.Content
	urlErr     error
	fetchedURL string
}

func (f *fakeFetcher) FetchContent(ctx context.Context, projectKey, documentID string) (*api.Content, error) {
	return f.content, f.contentErr
}

func (f *fakeFetcher) GetPreviewURL(ctx context.Context, projectKey, documentID string) (*api.PreviewResponse, error) {
	return f.previewResp, f.previewErr
}

func (f *fakeFetcher) FetchURL(ctx context.Context, absoluteURL string) (*api.Content, error) {
	f.fetchedURL = absoluteURL
	return f.urlContent, f.urlErr
}

func testDoc() model.Document {
	return model.Document{RemoteID: "doc-1", DisplayName: "notes.txt", ProjectKey: "proj"}
}

func TestResolveText(t *testing.T) {
	fetcher := &fakeFetcher{
		content: &api.Content{Body: []byte("hello world"), ContentType: "text/plain; charset=utf-8"},
	}
	state := NewResolver(fetcher).Resolve(context.Background(), "proj", testDoc())
	defer state.Close()

	assert.Equal(t, KindText, state.Kind)
	assert.Equal(t, "hello world", state.Text)
	assert.Equal(t, "notes.txt", state.Title)
}

func TestResolveJSONIsPrettyPrinted(t *testing.T) {
	fetcher := &fakeFetcher{
		content: &api.Content{Body: []byte(`{"a":1}`), ContentType: "application/json"},
	}
	state := NewResolver(fetcher).Resolve(context.Background(), "proj", testDoc())
	defer state.Close()

	assert.Equal(t, KindJSON, state.Kind)
	assert.Equal(t, "{\n  \"a\": 1\n}", state.Text)
}

func TestResolveInvalidJSONFallsBackToText(t *testing.T) {
	fetcher := &fakeFetcher{
		content: &api.Content{Body: []byte(`{broken`), ContentType: "application/json"},
	}
	state := NewResolver(fetcher).Resolve(context.Background(), "proj", testDoc())
	defer state.Close()

	assert.Equal(t, KindText, state.Kind)
	assert.Equal(t, "{broken", state.Text)
}

func TestResolveBinary(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	fetcher := &fakeFetcher{
		content: &api.Content{Body: payload, ContentType: "image/png"},
	}
	state := NewResolver(fetcher).Resolve(context.Background(), "proj", testDoc())
	defer state.Close()

	require.Equal(t, KindBinary, state.Kind)
	require.NotNil(t, state.Binary)

	data, err := os.ReadFile(state.Binary.Path())
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestResolveFallbackToPreviewURL(t *testing.T) {
	fetcher := &fakeFetcher{
		contentErr:  &api.ApiError{StatusCode: http.StatusUnprocessableEntity, Message: "not renderable"},
		previewResp: &api.PreviewResponse{PreviewURL: "https://cdn.example/p/doc-1", Filename: "frame.jpg"},
		urlContent:  &api.Content{Body: []byte("jpegbytes"), ContentType: "image/jpeg"},
	}
	state := NewResolver(fetcher).Resolve(context.Background(), "proj", testDoc())
	defer state.Close()

	require.Equal(t, KindBinary, state.Kind)
	assert.Equal(t, "https://cdn.example/p/doc-1", fetcher.fetchedURL)
	assert.Equal(t, "frame.jpg", state.Binary.Name())
}

func TestResolveUnavailableWhenFallbackHasNothing(t *testing.T) {
	fetcher := &fakeFetcher{
		contentErr: &api.ApiError{StatusCode: http.StatusNotFound, Message: "no content"},
		previewErr: &api.ApiError{StatusCode: http.StatusNotFound, Message: "no preview"},
	}
	state := NewResolver(fetcher).Resolve(context.Background(), "proj", testDoc())
	defer state.Close()

	assert.Equal(t, KindUnavailable, state.Kind)
	assert.Empty(t, state.Err)
}

func TestResolveTransportErrorIsError(t *testing.T) {
	fetcher := &fakeFetcher{contentErr: fmt.Errorf("connection refused")}
	state := NewResolver(fetcher).Resolve(context.Background(), "proj", testDoc())
	defer state.Close()

	assert.Equal(t, KindError, state.Kind)
	assert.Equal(t, "connection refused", state.Err)
}

func TestCloseIsIdempotent(t *testing.T) {
	fetcher := &fakeFetcher{
		content: &api.Content{Body: []byte("binary"), ContentType: "application/octet-stream"},
	}
	state := NewResolver(fetcher).Resolve(context.Background(), "proj", testDoc())
	require.Equal(t, KindBinary, state.Kind)

	path := state.Binary.Path()
	state.Close()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "temp file must be removed on close")

	// A second close must not panic or error.
	state.Close()
}

func TestCopyText(t *testing.T) {
	text := &State{Kind: KindText, Text: "copy me"}
	got, err := text.CopyText()
	require.NoError(t, err)
	assert.Equal(t, "copy me", got)

	unavailable := &State{Kind: KindUnavailable}
	_, err = unavailable.CopyText()
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestSaveTo(t *testing.T) {
	dir := t.TempDir()

	text := &State{Kind: KindText, Text: "saved"}
	dest := filepath.Join(dir, "out.txt")
	require.NoError(t, text.SaveTo(dest))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "saved", string(data))

	unavailable := &State{Kind: KindUnavailable}
	assert.ErrorIs(t, unavailable.SaveTo(filepath.Join(dir, "none.bin")), ErrNoContent)
}
