package driven

import "context"

// ObjectInfo describes one listed object.
type ObjectInfo struct {
	// Key is the full object key.
	Key string

	// Size is the object size in bytes.
	Size int64
}

// ObjectStore lists and transfers raw blobs in a bucket. Implementations
// wrap connectivity and permission failures in domain.ErrStorageUnavailable.
//
// The store reports everything it sees; filtering of directory markers and
// zero-byte objects is the caller's concern.
type ObjectStore interface {
	// List returns the objects under the given key prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Fetch downloads one object.
	Fetch(ctx context.Context, key string) ([]byte, error)

	// Put uploads one object, replacing any existing content.
	Put(ctx context.Context, key string, data []byte) error

	// Exists reports whether an object is present without downloading it.
	Exists(ctx context.Context, key string) (bool, error)
}
