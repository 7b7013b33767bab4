package interfaces

import (
	"context"
	"io"
)

// ObjectStore abstracts the external object storage used for uploaded assets.
// Implementations must return a publicly reachable URL for stored objects.
type ObjectStore interface {
	// Put stores an object under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// Delete removes an object. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL for a previously stored key.
	URL(key string) string
}
