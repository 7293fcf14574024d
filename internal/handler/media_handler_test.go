package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webapp-template/internal/storage"
)

type presigningStore struct {
	err  error
	keys []string
}

func (s *presigningStore) Mode() string                     { return "s3" }
func (s *presigningStore) Health(ctx context.Context) error { return nil }

func (s *presigningStore) PresignGet(ctx context.Context, key string) (string, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return "", s.err
	}
	return "https://bucket.example.com/" + key + "?X-Amz-Signature=abc", nil
}

type nopSeekCloser struct{ *strings.Reader }

func (nopSeekCloser) Close() error { return nil }

type openingStore struct {
	files map[string]string
}

func (s *openingStore) Mode() string                     { return "local" }
func (s *openingStore) Health(ctx context.Context) error { return nil }

func (s *openingStore) Open(ctx context.Context, key string) (io.ReadSeekCloser, storage.ObjectInfo, error) {
	body, ok := s.files[key]
	if !ok {
		return nil, storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	info := storage.ObjectInfo{ContentType: "text/plain; charset=utf-8", Size: int64(len(body)), ModTime: time.Unix(0, 0)}
	return nopSeekCloser{strings.NewReader(body)}, info, nil
}

type healthOnlyStore struct{}

func (healthOnlyStore) Mode() string                     { return "none" }
func (healthOnlyStore) Health(ctx context.Context) error { return nil }

func serveMedia(store storage.Storage, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewMediaHandler(store, "/media/").Serve(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMediaHandlerRedirectsToPresignedURL(t *testing.T) {
	store := &presigningStore{}

	rec := serveMedia(store, "/media/avatars//a.png")

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://bucket.example.com/avatars/a.png?X-Amz-Signature=abc", rec.Header().Get("Location"))
	assert.Equal(t, []string{"avatars/a.png"}, store.keys)
}

func TestMediaHandlerPresignFailure(t *testing.T) {
	rec := serveMedia(&presigningStore{err: errors.New("no credentials")}, "/media/a.png")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serveMedia(&presigningStore{err: storage.ErrInvalidKey}, "/media/a.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMediaHandlerStreamsOpenedFile(t *testing.T) {
	store := &openingStore{files: map[string]string{"docs/readme.txt": "hello media"}}

	rec := serveMedia(store, "/media/docs/readme.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello media", rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = serveMedia(store, "/media/docs/missing.txt")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"File not found"}`, rec.Body.String())
}

func TestMediaHandlerRejectsTraversalAndUnservableBackends(t *testing.T) {
	store := &presigningStore{}
	rec := serveMedia(store, "/media/../etc/passwd")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, store.keys)

	rec = serveMedia(healthOnlyStore{}, "/media/a.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
