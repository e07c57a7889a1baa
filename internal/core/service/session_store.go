package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
	"github.com/crmdesk/admin-console/pkg/logger"
)

const (
	tokenKey = "authToken"
	userKey  = "user"
)

// SessionStore keeps the operator session in client storage under two keys,
// written and removed together. Writes and conditional removals are
// serialized so a removal decided for one token never lands on another.
type SessionStore struct {
	mu      sync.Mutex
	storage ports.ClientStorage
	prefix  string
	log     zerolog.Logger
	now     func() time.Time
}

func NewSessionStore(storage ports.ClientStorage, prefix string, log zerolog.Logger) *SessionStore {
	return &SessionStore{storage: storage, prefix: prefix, log: log, now: time.Now}
}

// Set stores token and user in one write, replacing any previous session.
// When the token is a JWT with an exp claim, both keys expire with it.
func (s *SessionStore) Set(ctx context.Context, token string, user *domain.User) error {
	if token == "" || user == nil {
		return fmt.Errorf("set session: %w", domain.ErrIncompleteSession)
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("set session: encode user: %w", err)
	}

	var ttl time.Duration
	if exp, ok := tokenExpiry(token); ok {
		ttl = exp.Sub(s.now())
		if ttl <= 0 {
			return fmt.Errorf("set session: %w", domain.ErrAuthenticationExpired)
		}
	}

	items := map[string]string{
		s.key(tokenKey): token,
		s.key(userKey):  string(payload),
	}
	s.mu.Lock()
	err = s.storage.SetItems(ctx, items, ttl)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	s.log.Debug().
		Str("user_id", user.ID).
		Str("role", user.Role).
		Str("token", logger.Fingerprint(token)).
		Dur("ttl", ttl).
		Msg("session stored")
	return nil
}

// Get returns the stored session, or the empty session when either half is
// missing or unreadable. A partial or malformed session is cleared.
func (s *SessionStore) Get(ctx context.Context) domain.Session {
	sess, broken, err := s.load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session read failed, treating as empty")
		return domain.Session{}
	}
	if broken != "" {
		s.heal(ctx, broken)
	}
	return sess
}

// Clear removes both keys. Clearing an empty session is a no-op.
func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(ctx)
}

// ClearIf removes the session only while it still holds token, and reports
// whether it did. An empty token matches a session without one.
func (s *SessionStore) ClearIf(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.storage.GetItems(ctx, s.key(tokenKey))
	if err != nil {
		return false, fmt.Errorf("clear session: %w", err)
	}
	if items[s.key(tokenKey)] != token {
		return false, nil
	}
	if err := s.remove(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// load reads both keys. A non-empty broken names why the stored data cannot
// be used as a session.
func (s *SessionStore) load(ctx context.Context) (domain.Session, string, error) {
	items, err := s.storage.GetItems(ctx, s.key(tokenKey), s.key(userKey))
	if err != nil {
		return domain.Session{}, "", err
	}

	token, hasToken := items[s.key(tokenKey)]
	raw, hasUser := items[s.key(userKey)]
	if !hasToken && !hasUser {
		return domain.Session{}, "", nil
	}
	if !hasToken || !hasUser || token == "" {
		return domain.Session{}, "partial session", nil
	}

	var user *domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user == nil {
		return domain.Session{}, "malformed user", nil
	}
	return domain.Session{Token: token, User: user}, "", nil
}

// heal drops unusable data, re-checking under the lock so a login that
// completed in between survives.
func (s *SessionStore) heal(ctx context.Context, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, broken, err := s.load(ctx); err != nil || broken == "" {
		return
	}
	s.log.Warn().Str("reason", reason).Msg("discarding unusable session")
	if err := s.remove(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear unusable session")
	}
}

func (s *SessionStore) remove(ctx context.Context) error {
	if err := s.storage.RemoveItems(ctx, s.key(tokenKey), s.key(userKey)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + ":" + name
}

// tokenExpiry reads the exp claim without verifying the signature; the
// console treats tokens as opaque and only uses exp to bound storage TTL.
func tokenExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
