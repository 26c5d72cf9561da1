package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"opor-loyalty/internal/adapters/persistence/kv"
	"opor-loyalty/internal/core/domain"
	"opor-loyalty/internal/pkg/metrics"
)

// DefaultMaxRetries is the compare-and-swap retry budget when none is configured
const DefaultMaxRetries = 5

// collection persists a whole slice of T under one key
type collection[T any] struct {
	store      kv.Store
	key        string
	decode     func(string) ([]T, error)
	fallback   func() []T
	maxRetries int
}

// load reads and decodes the collection.
// Returns domain.ErrRecordAbsent or a *DecodeError alongside the raw value.
func (c *collection[T]) load(ctx context.Context) ([]T, string, error) {
	raw, err := c.store.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, "", domain.ErrRecordAbsent
		}
		return nil, "", fmt.Errorf("read %s: %w", c.key, err)
	}

	items, err := c.decode(raw)
	if err != nil {
		return nil, raw, &DecodeError{Key: c.key, Err: err}
	}
	return items, raw, nil
}

func (c *collection[T]) list(ctx context.Context) ([]T, error) {
	items, _, err := c.load(ctx)
	return items, err
}

func (c *collection[T]) replace(ctx context.Context, items []T) error {
	raw, err := encode(items)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.key, raw)
}

// initialize stores items only if the key has never been written.
// It returns the collection that is stored afterwards, which is the
// concurrent writer's when another write got there first.
func (c *collection[T]) initialize(ctx context.Context, items []T) ([]T, error) {
	raw, err := encode(items)
	if err != nil {
		return nil, err
	}
	ok, err := c.store.CompareAndSwap(ctx, c.key, "", raw)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", c.key, err)
	}
	if ok {
		return items, nil
	}
	return c.list(ctx)
}

// mutate runs fn against the current collection and commits with
// compare-and-swap, re-reading and re-running fn on conflict.
// An absent or undecodable collection starts from the fallback set.
func (c *collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	retries := c.maxRetries
	if retries < 1 {
		retries = DefaultMaxRetries
	}

	for attempt := 0; attempt <= retries; attempt++ {
		items, raw, err := c.load(ctx)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrRecordAbsent):
			items = c.fallback()
		case errors.Is(err, ErrNewerSchema):
			return nil, err
		case errors.Is(err, domain.ErrRecordCorrupt):
			log.Printf("⚠️ %v, rebuilding from seed data", err)
			metrics.SeedFallbacks.WithLabelValues(c.key).Inc()
			items = c.fallback()
		default:
			return nil, err
		}

		next, err := fn(items)
		if err != nil {
			return nil, err
		}

		encoded, err := encode(next)
		if err != nil {
			return nil, err
		}
		if encoded == raw {
			return next, nil
		}

		ok, err := c.store.CompareAndSwap(ctx, c.key, raw, encoded)
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", c.key, err)
		}
		if ok {
			return next, nil
		}
		metrics.StoreConflicts.WithLabelValues(c.key).Inc()
	}

	return nil, fmt.Errorf("%s after %d attempts: %w", c.key, retries+1, domain.ErrStoreConflict)
}
