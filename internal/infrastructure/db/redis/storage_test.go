package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStorage(t *testing.T) (*Storage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStorage(client), mr
}

func TestStorage_RoundTrip(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	if err := s.SetItems(ctx, map[string]string{"crm:authToken": "abc", "crm:user": `{"id":"u1"}`}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.GetItems(ctx, "crm:authToken", "crm:user", "crm:missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got["crm:authToken"] != "abc" || got["crm:user"] != `{"id":"u1"}` {
		t.Fatalf("unexpected items %v", got)
	}
}

func TestStorage_TTLAppliesToEveryKey(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()

	_ = s.SetItems(ctx, map[string]string{"crm:authToken": "abc", "crm:user": "{}"}, time.Minute)
	if ttl := mr.TTL("crm:user"); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", ttl)
	}

	mr.FastForward(time.Minute)
	got, err := s.GetItems(ctx, "crm:authToken", "crm:user")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected both keys expired, got %v", got)
	}
}

func TestStorage_RemoveIsIdempotent(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()

	_ = s.SetItems(ctx, map[string]string{"crm:authToken": "abc", "crm:user": "{}"}, 0)
	for i := 0; i < 2; i++ {
		if err := s.RemoveItems(ctx, "crm:authToken", "crm:user"); err != nil {
			t.Fatalf("remove #%d: %v", i+1, err)
		}
	}
	if mr.Exists("crm:authToken") || mr.Exists("crm:user") {
		t.Fatal("expected keys removed")
	}
}

func TestStorage_PingFailsWhenServerDown(t *testing.T) {
	s, mr := newTestStorage(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	mr.Close()
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail")
	}
}
