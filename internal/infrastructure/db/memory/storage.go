// Package memory is an in-process ClientStorage for development and tests.
package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value   string
	expires time.Time
}

// Storage keeps items in a map guarded by one mutex, so multi-key writes are
// atomic. Nothing survives a restart.
type Storage struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

func NewStorage() *Storage {
	return &Storage{items: make(map[string]entry), now: time.Now}
}

func (s *Storage) GetItems(_ context.Context, keys ...string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		e, ok := s.items[k]
		if !ok {
			continue
		}
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(s.items, k)
			continue
		}
		out[k] = e.value
	}
	return out, nil
}

func (s *Storage) SetItems(_ context.Context, items map[string]string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expires time.Time
	if ttl > 0 {
		expires = s.now().Add(ttl)
	}
	for k, v := range items {
		s.items[k] = entry{value: v, expires: expires}
	}
	return nil
}

func (s *Storage) RemoveItems(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.items, k)
	}
	return nil
}

func (s *Storage) Ping(context.Context) error { return nil }
