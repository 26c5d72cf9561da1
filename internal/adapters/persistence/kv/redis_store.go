package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

var errValueChanged = errors.New("kv: value changed")

// RedisStore keeps records as plain Redis strings.
// Compare-and-swap uses WATCH/MULTI optimistic transactions.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a new Redis-backed store
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// Get gets the value stored under key
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return v, err
}

// Set writes value with no expiry
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// CompareAndSwap writes next if the current value equals prev
func (s *RedisStore) CompareAndSwap(ctx context.Context, key, prev, next string) (bool, error) {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
			if prev != "" {
				return errValueChanged
			}
		case err != nil:
			return err
		case prev == "" || cur != prev:
			return errValueChanged
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, errValueChanged) || errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ping checks the Redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
