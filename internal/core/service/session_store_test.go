package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/infrastructure/db/memory"
)

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestSessionStore_SetThenGet(t *testing.T) {
	store := NewSessionStore(memory.NewStorage(), "crm", zerolog.Nop())
	ctx := context.Background()
	user := &domain.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: domain.RoleAdmin}

	if err := store.Set(ctx, "abc", user); err != nil {
		t.Fatalf("set: %v", err)
	}

	sess := store.Get(ctx)
	if sess.Token != "abc" {
		t.Fatalf("expected token abc, got %q", sess.Token)
	}
	if sess.User == nil || *sess.User != *user {
		t.Fatalf("expected user %+v, got %+v", user, sess.User)
	}
}

func TestSessionStore_SetReplacesPreviousSession(t *testing.T) {
	store := NewSessionStore(memory.NewStorage(), "crm", zerolog.Nop())
	ctx := context.Background()

	_ = store.Set(ctx, "first", &domain.User{ID: "u1", Role: domain.RoleSales})
	if err := store.Set(ctx, "second", &domain.User{ID: "u2", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("set: %v", err)
	}

	sess := store.Get(ctx)
	if sess.Token != "second" || sess.User.ID != "u2" {
		t.Fatalf("expected second session, got %+v", sess)
	}
}

func TestSessionStore_RejectsIncompleteSession(t *testing.T) {
	storage := newRecordingStorage()
	store := NewSessionStore(storage, "crm", zerolog.Nop())
	ctx := context.Background()

	if err := store.Set(ctx, "", &domain.User{ID: "u1"}); !errors.Is(err, domain.ErrIncompleteSession) {
		t.Fatalf("expected ErrIncompleteSession for empty token, got %v", err)
	}
	if err := store.Set(ctx, "abc", nil); !errors.Is(err, domain.ErrIncompleteSession) {
		t.Fatalf("expected ErrIncompleteSession for nil user, got %v", err)
	}
	if storage.sets != 0 {
		t.Fatalf("expected no writes, got %d", storage.sets)
	}
}

func TestSessionStore_ClearIsIdempotent(t *testing.T) {
	store := NewSessionStore(memory.NewStorage(), "crm", zerolog.Nop())
	ctx := context.Background()

	_ = store.Set(ctx, "abc", &domain.User{ID: "u1"})
	for i := 0; i < 2; i++ {
		if err := store.Clear(ctx); err != nil {
			t.Fatalf("clear #%d: %v", i+1, err)
		}
		if sess := store.Get(ctx); sess.Active() || sess.Token != "" || sess.User != nil {
			t.Fatalf("expected empty session after clear #%d, got %+v", i+1, sess)
		}
	}
}

func TestSessionStore_ClearIfMatchesToken(t *testing.T) {
	store := NewSessionStore(memory.NewStorage(), "crm", zerolog.Nop())
	ctx := context.Background()
	_ = store.Set(ctx, "fresh", &domain.User{ID: "u1"})

	cleared, err := store.ClearIf(ctx, "old")
	if err != nil || cleared {
		t.Fatalf("expected no clear for another token, got %v %v", cleared, err)
	}
	if sess := store.Get(ctx); sess.Token != "fresh" {
		t.Fatalf("expected session kept, got %+v", sess)
	}

	cleared, err = store.ClearIf(ctx, "fresh")
	if err != nil || !cleared {
		t.Fatalf("expected clear for the current token, got %v %v", cleared, err)
	}
	if store.Get(ctx).Active() {
		t.Fatal("expected empty session")
	}
}

func TestSessionStore_HealsPartialSession(t *testing.T) {
	storage := newRecordingStorage()
	storage.items["crm:authToken"] = "abc"
	store := NewSessionStore(storage, "crm", zerolog.Nop())

	sess := store.Get(context.Background())
	if sess.Active() {
		t.Fatalf("expected empty session, got %+v", sess)
	}
	if storage.len() != 0 {
		t.Fatalf("expected orphaned token to be removed, %d items left", storage.len())
	}
}

func TestSessionStore_HealsMalformedUser(t *testing.T) {
	for _, raw := range []string{"{not json", "null"} {
		storage := newRecordingStorage()
		storage.items["crm:authToken"] = "abc"
		storage.items["crm:user"] = raw
		store := NewSessionStore(storage, "crm", zerolog.Nop())

		if sess := store.Get(context.Background()); sess.Active() {
			t.Fatalf("user %q: expected empty session, got %+v", raw, sess)
		}
		if storage.len() != 0 {
			t.Fatalf("user %q: expected session to be cleared", raw)
		}
	}
}

func TestSessionStore_ReadErrorDoesNotClear(t *testing.T) {
	storage := newRecordingStorage()
	storage.items["crm:authToken"] = "abc"
	storage.items["crm:user"] = `{"id":"u1","role":"admin"}`
	storage.getErr = errors.New("storage offline")
	store := NewSessionStore(storage, "crm", zerolog.Nop())

	if sess := store.Get(context.Background()); sess.Active() {
		t.Fatalf("expected empty session on read error, got %+v", sess)
	}
	if storage.removes != 0 {
		t.Fatalf("expected no removal on read error, got %d", storage.removes)
	}
}

func TestSessionStore_TTLFollowsTokenExpiry(t *testing.T) {
	storage := newRecordingStorage()
	store := NewSessionStore(storage, "crm", zerolog.Nop())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	token := mintToken(t, now.Add(time.Hour))
	if err := store.Set(context.Background(), token, &domain.User{ID: "u1"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if storage.lastTTL != time.Hour {
		t.Fatalf("expected 1h ttl, got %v", storage.lastTTL)
	}
}

func TestSessionStore_OpaqueTokenHasNoTTL(t *testing.T) {
	storage := newRecordingStorage()
	store := NewSessionStore(storage, "crm", zerolog.Nop())

	if err := store.Set(context.Background(), "opaque-token", &domain.User{ID: "u1"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if storage.lastTTL != 0 {
		t.Fatalf("expected no ttl, got %v", storage.lastTTL)
	}
}

func TestSessionStore_RejectsExpiredToken(t *testing.T) {
	storage := newRecordingStorage()
	store := NewSessionStore(storage, "crm", zerolog.Nop())

	token := mintToken(t, time.Now().Add(-time.Minute))
	err := store.Set(context.Background(), token, &domain.User{ID: "u1"})
	if !errors.Is(err, domain.ErrAuthenticationExpired) {
		t.Fatalf("expected ErrAuthenticationExpired, got %v", err)
	}
	if storage.sets != 0 {
		t.Fatal("expired token must not be stored")
	}
}
