package kv

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store used for development and tests
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

// Get returns the value stored under key
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

// Set writes value under key
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// CompareAndSwap writes next if the current value equals prev
func (s *MemoryStore) CompareAndSwap(_ context.Context, key, prev, next string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.items[key]
	if prev == "" {
		if ok {
			return false, nil
		}
	} else if !ok || cur != prev {
		return false, nil
	}
	s.items[key] = next
	return true, nil
}

// Ping always succeeds
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
