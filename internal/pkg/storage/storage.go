package storage

import (
	"context"
	"io"
)

// FileStorage abstracts where proof photos and company assets end up. The
// only implementation today is local disk; an object store can slot in
// behind the same interface.
type FileStorage interface {
	// Upload stores a file and returns its storage key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for a stored key
	URL(path string) string
}
