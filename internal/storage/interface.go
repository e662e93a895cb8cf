package storage

import (
	"context"
	"io"
)

// ObjectStorage defines the interface for the durable artifact store.
// Artifacts are append-only, so there is no delete operation.
type ObjectStorage interface {
	// Upload stores an object under key
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download opens an object for reading
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists checks if an object exists
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns a locator string for an object
	GetURL(key string) string

	// EnsureReady prepares the backing store (bucket or directory)
	EnsureReady(ctx context.Context) error
}
