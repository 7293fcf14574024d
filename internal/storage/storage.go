package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"webapp-template/internal/config"
)

var (
	ErrObjectNotFound = errors.New("media object not found")
	ErrInvalidKey     = errors.New("invalid media key")
)

type ObjectInfo struct {
	ContentType string
	Size        int64
	ModTime     time.Time
}

// Storage is the media file backend. A backend serves downloads either as
// an Opener or as a Presigner.
type Storage interface {
	// Mode is "s3" or "local".
	Mode() string
	Health(ctx context.Context) error
}

// Opener is a backend whose files are streamed by the application.
type Opener interface {
	Open(ctx context.Context, key string) (io.ReadSeekCloser, ObjectInfo, error)
}

// Presigner is a backend whose files are fetched by the client from a
// presigned URL.
type Presigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

// New picks the S3 backend when a bucket is configured and the local
// filesystem otherwise.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (Storage, error) {
	if cfg.StorageMode() == "s3" {
		return NewS3Storage(ctx, cfg.Storage, cfg.PresignTTL(), log)
	}
	return NewLocalStorage(cfg.Storage.MediaRoot, log)
}

// CleanKey normalises a slash separated key and rejects keys escaping the
// storage root.
func CleanKey(key string) (string, error) {
	if strings.Contains(key, "\x00") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", ErrInvalidKey
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+key), "/")
	if cleaned == "" || cleaned == "." {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
