// Package kv is the key-value boundary every collection is persisted through.
// Each collection lives under a single key as one JSON document.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been written
var ErrKeyNotFound = errors.New("kv: key not found")

// Store is a string key-value store with a compare-and-swap primitive.
type Store interface {
	// Get returns the stored value or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set unconditionally writes value.
	Set(ctx context.Context, key, value string) error

	// CompareAndSwap writes next only if the current value equals prev.
	// An empty prev means the key must not exist yet. It returns false,
	// without error, when the current value did not match.
	CompareAndSwap(ctx context.Context, key, prev, next string) (bool, error)

	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
}
