package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	log "github.com/Goden-Gun/reserve-lib/pkg/logger"
	"github.com/Goden-Gun/reserve-lib/pkg/storage"
)

// Storage keys for the persisted mirror. Written together, cleared together.
const (
	TokenKey   = "token"
	ProfileKey = "user_profile"
)

// Profile is the authenticated reader's profile.
type Profile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar,omitempty"`
	CardNo string `json:"cardNo"`
}

// Store owns the process-wide session: the optional authenticated profile and
// its bearer token. Exactly one Store should exist per process; it is passed
// explicitly to whatever needs the profile rather than accessed as a global.
//
// Every mutation is mirrored into the storage adapter so the session survives
// a restart. The mirror is best-effort: if the storage write fails the
// in-memory state still stands, since memory is the source of truth.
//
// Invariant: profile and token are set and cleared together. No observable
// state has exactly one of the two present.
type Store struct {
	mu      sync.RWMutex
	profile *Profile
	token   string
	mirror  storage.Store

	subMu   sync.Mutex
	subs    map[int]func(*Profile, string)
	nextSub int
}

// NewStore creates a session store mirrored into the given storage adapter.
func NewStore(mirror storage.Store) *Store {
	return &Store{
		mirror: mirror,
		subs:   make(map[int]func(*Profile, string)),
	}
}

// Restore loads a previously persisted session at startup. A mirror entry
// missing either half of the pair is ignored, preserving the invariant.
func (s *Store) Restore(ctx context.Context) {
	if s.mirror == nil {
		return
	}
	token, err := s.mirror.Get(ctx, TokenKey)
	if err != nil {
		log.WithError(err).Warn("session restore: read token failed")
		return
	}
	raw, err := s.mirror.Get(ctx, ProfileKey)
	if err != nil {
		log.WithError(err).Warn("session restore: read profile failed")
		return
	}
	if token == "" || raw == "" {
		return
	}
	var profile Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		log.WithError(err).Warn("session restore: decode profile failed")
		return
	}

	s.mu.Lock()
	s.profile = &profile
	s.token = token
	s.mu.Unlock()
	s.notify()
}

// SetUser installs the authenticated profile and token as one logical step
// and mirrors both into storage.
func (s *Store) SetUser(ctx context.Context, profile Profile, token string) error {
	if token == "" {
		return errors.New("session token is required")
	}

	s.mu.Lock()
	s.profile = &profile
	s.token = token
	s.mu.Unlock()

	if s.mirror != nil {
		raw, err := json.Marshal(profile)
		if err != nil {
			log.WithError(err).Warn("session mirror: encode profile failed")
		} else if err := s.mirror.Set(ctx, ProfileKey, string(raw)); err != nil {
			log.WithError(err).Warn("session mirror: write profile failed")
		}
		if err := s.mirror.Set(ctx, TokenKey, token); err != nil {
			log.WithError(err).Warn("session mirror: write token failed")
		}
	}

	s.notify()
	return nil
}

// ClearUser drops the session and removes the persisted mirror entries.
func (s *Store) ClearUser(ctx context.Context) {
	s.mu.Lock()
	s.profile = nil
	s.token = ""
	s.mu.Unlock()

	if s.mirror != nil {
		if err := s.mirror.Remove(ctx, ProfileKey); err != nil {
			log.WithError(err).Warn("session mirror: remove profile failed")
		}
		if err := s.mirror.Remove(ctx, TokenKey); err != nil {
			log.WithError(err).Warn("session mirror: remove token failed")
		}
	}

	s.notify()
}

// Profile returns a copy of the authenticated profile, or nil.
func (s *Store) Profile() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Token returns the bearer token, empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a session is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Subscribe registers a callback invoked after every session change (login,
// logout, restore). The returned function cancels the subscription.
func (s *Store) Subscribe(fn func(profile *Profile, token string)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	profile := s.Profile()
	token := s.Token()

	s.subMu.Lock()
	fns := make([]func(*Profile, string), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(profile, token)
	}
}
