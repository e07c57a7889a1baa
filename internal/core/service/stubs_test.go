package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/crmdesk/admin-console/internal/core/ports"
)

type stubAPI struct {
	doFn func(ctx context.Context, req ports.APIRequest) (*ports.APIResponse, error)
}

func (s *stubAPI) Do(ctx context.Context, req ports.APIRequest) (*ports.APIResponse, error) {
	return s.doFn(ctx, req)
}

// jsonResponse builds a successful response the way the pipeline would.
func jsonResponse(t *testing.T, body string) *ports.APIResponse {
	t.Helper()
	resp := &ports.APIResponse{Status: 200, Body: []byte(body)}
	if err := json.Unmarshal(resp.Body, &resp.Envelope); err != nil {
		t.Fatalf("bad fixture %q: %v", body, err)
	}
	return resp
}

// statusError mimics a rejected backend call.
type statusError struct {
	kind   error
	status int
}

func (e *statusError) Error() string   { return fmt.Sprintf("%v: %d", e.kind, e.status) }
func (e *statusError) Unwrap() error   { return e.kind }
func (e *statusError) StatusCode() int { return e.status }

type stubNavigator struct {
	mu        sync.Mutex
	redirects []string
}

func (s *stubNavigator) Redirect(_ context.Context, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirects = append(s.redirects, path)
}

// recordingStorage is an in-memory ClientStorage that records calls and can
// be told to fail.
type recordingStorage struct {
	mu      sync.Mutex
	items   map[string]string
	lastTTL time.Duration
	sets    int
	removes int
	getErr  error
	setErr  error
}

func newRecordingStorage() *recordingStorage {
	return &recordingStorage{items: make(map[string]string)}
}

func (s *recordingStorage) GetItems(_ context.Context, keys ...string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	out := make(map[string]string)
	for _, k := range keys {
		if v, ok := s.items[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *recordingStorage) SetItems(_ context.Context, items map[string]string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.sets++
	s.lastTTL = ttl
	for k, v := range items {
		s.items[k] = v
	}
	return nil
}

func (s *recordingStorage) RemoveItems(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removes++
	for _, k := range keys {
		delete(s.items, k)
	}
	return nil
}

func (s *recordingStorage) Ping(context.Context) error { return nil }

func (s *recordingStorage) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
