package storage

import (
	"context"
	"io"
)

// ObjectStorage is where staff identity-verification images live.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// URL returns the public address an uploaded object is served from.
	URL(key string) string
}
