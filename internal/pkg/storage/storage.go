package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidKey = errors.New("invalid object key")

// ObjectStore keeps objects in named buckets and serves them at public URLs.
type ObjectStore interface {
	// Upload stores the object and returns its public URL
	Upload(ctx context.Context, bucket, key string, body io.Reader) (string, error)

	// PublicURL returns the URL an uploaded object is served from
	PublicURL(bucket, key string) string

	// Delete removes an object; deleting a missing object is not an error
	Delete(ctx context.Context, bucket, key string) error
}
