// Package storage provides access to the object store backing media uploads.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrObjectNotFound is returned when the requested object key does not exist.
	ErrObjectNotFound = errors.New("object not found")
	// ErrKeyEmpty is returned when an empty object key is given.
	ErrKeyEmpty = errors.New("object key cannot be empty")
)

// ObjectStore is the interface the media handlers depend on. The production
// implementation talks to an S3 compatible object store, tests use a fake.
type ObjectStore interface {
	// Put stores an object under the given key with the given content type
	// and returns the public URL of the stored object.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Get retrieves an object and its content type by key.
	Get(ctx context.Context, key string) ([]byte, string, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
}
