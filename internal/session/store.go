// Package session provides the process-wide authenticated session store:
// the current bearer token and the user profile it belongs to, mirrored into
// persistent local state.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/linka-app/linka/internal/api"
	"github.com/linka-app/linka/internal/localstore"
)

// Fixed keys of the persisted mirror. Both are cleared together on logout.
const (
	KeyAccessToken = "access_token"
	KeyUser        = "user"
)

// UserFetcher fetches the profile belonging to the current credential.
// The store takes it as a parameter instead of holding an api.Client so the
// dependency between store and gateway stays one-directional.
type UserFetcher interface {
	Me(ctx context.Context) (api.User, error)
}

// Store holds the current credential and user profile. All components read it
// at call time; a token change mid-session is observed by the next call.
//
// Invariant: the profile is non-nil only while a token is present. A failed
// profile refresh is treated as credential invalidation, not as a transient
// error, and clears both.
type Store struct {
	mu    sync.RWMutex
	token string
	user  *api.User
	kv    *localstore.Store
}

// NewStore creates a session store backed by the given persisted mirror and
// loads any previously persisted credential and profile.
func NewStore(kv *localstore.Store) *Store {
	s := &Store{kv: kv}
	if kv == nil {
		return s
	}

	if token, ok, err := kv.Get(KeyAccessToken); err == nil && ok {
		s.token = token
	}
	if raw, ok, err := kv.Get(KeyUser); err == nil && ok {
		var user api.User
		if json.Unmarshal([]byte(raw), &user) == nil {
			s.user = &user
		}
	}
	// A persisted profile without a token violates the invariant; drop it.
	if s.token == "" && s.user != nil {
		s.user = nil
		_ = kv.Delete(KeyUser)
	}
	return s
}

// Token returns the current bearer token, or "" when logged out.
// Implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current profile, or nil when no profile is loaded.
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a credential is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores and persists a new credential. An empty token is a logout.
// Callers must follow a non-empty SetToken with RefreshUser; Authenticate
// does both.
func (s *Store) SetToken(token string) {
	if token == "" {
		s.Logout()
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if s.kv != nil {
		if err := s.kv.Set(KeyAccessToken, token); err != nil {
			slog.Warn("Persist token failed", "error", err)
		}
	}
}

// SetUser updates the in-memory profile and its persisted mirror.
func (s *Store) SetUser(user *api.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if s.kv == nil {
		return
	}
	if user == nil {
		_ = s.kv.Delete(KeyUser)
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		slog.Warn("Persist user failed", "error", err)
		return
	}
	if err := s.kv.Set(KeyUser, string(data)); err != nil {
		slog.Warn("Persist user failed", "error", err)
	}
}

// RefreshUser re-fetches the profile for the current credential. Without a
// credential it is a no-op. Any failure escalates to a full logout and the
// error is returned so the caller can surface it.
func (s *Store) RefreshUser(ctx context.Context, fetcher UserFetcher) error {
	if !s.Authenticated() {
		return nil
	}

	user, err := fetcher.Me(ctx)
	if err != nil {
		slog.Info("Profile refresh failed, invalidating session", "error", err)
		s.Logout()
		return err
	}

	s.SetUser(&user)
	return nil
}

// Authenticate installs a new credential and immediately resolves its
// profile. On refresh failure the session ends up fully logged out.
func (s *Store) Authenticate(ctx context.Context, token string, fetcher UserFetcher) error {
	s.SetToken(token)
	return s.RefreshUser(ctx, fetcher)
}

// Logout clears the credential, the profile and their persisted copies.
// Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if s.kv != nil {
		if err := s.kv.Delete(KeyAccessToken, KeyUser); err != nil {
			slog.Warn("Clear persisted session failed", "error", err)
		}
	}
}
