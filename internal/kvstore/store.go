// Package kvstore persists opaque JSON blobs per user under string keys.
package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Store is a per-user key-value store. Values are opaque bytes; callers own the encoding.
type Store interface {
	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, userId int, key string) ([]byte, error)
	Put(ctx context.Context, userId int, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, userId int, key string) error
}
