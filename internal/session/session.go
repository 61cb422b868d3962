// Package session is the single source of truth for who is logged in. It
// restores the persisted token at launch, exposes login and logout, and
// notifies subscribers on every state change so routing can re-evaluate.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sefyapp/sefy/internal/logger"
	"github.com/sefyapp/sefy/internal/model"
	"github.com/sefyapp/sefy/internal/store"
)

// ProfileFetcher fetches the authenticated user's profile. Implemented by the
// API gateway; the indirection keeps this package free of HTTP concerns.
type ProfileFetcher interface {
	Me(ctx context.Context) (*model.Usuario, error)
}

// Snapshot is an immutable view of the session state.
//
// Invariant: User is non-nil only while Token is non-empty. A token without a
// user is the degraded state left behind by a failed profile fetch; routing
// treats it as a standard (non-admin) user.
type Snapshot struct {
	Token   string
	User    *model.Usuario
	Loading bool
}

// Authenticated reports whether a token is present.
func (s Snapshot) Authenticated() bool {
	return s.Token != ""
}

// Store owns the session state for the process lifetime.
type Store struct {
	mu    sync.Mutex
	state *store.Store
	api   ProfileFetcher
	log   *logger.Logger

	token   string
	user    *model.Usuario
	loading bool

	// gen invalidates in-flight profile fetches: a response that started
	// under an older generation must not overwrite newer state.
	gen uint64

	subs []func(Snapshot)
}

// New creates a session store in the Loading state. Call Restore once at
// process start.
func New(state *store.Store, api ProfileFetcher, log *logger.Logger) *Store {
	return &Store{
		state:   state,
		api:     api,
		log:     log,
		loading: true,
	}
}

// Subscribe registers a callback invoked after every state change. Callbacks
// run outside the store's lock.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{Token: s.token, User: s.user, Loading: s.loading}
}

func (s *Store) notify() {
	s.mu.Lock()
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// Restore loads the persisted token and, when present, re-fetches the profile
// before clearing the loading flag. A profile fetch failure leaves the token
// in place without a user: the session degrades instead of forcing a logout.
func (s *Store) Restore(ctx context.Context) {
	token, err := s.state.Get(store.KeyToken)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Error(err, "failed to read persisted token")
		}
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.notify()
		return
	}

	s.mu.Lock()
	s.token = token
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	user, fetchErr := s.api.Me(ctx)

	s.mu.Lock()
	if s.gen == gen {
		if fetchErr == nil {
			s.user = user
		} else {
			s.log.Error(fetchErr, "failed to restore profile, keeping degraded session")
		}
		s.loading = false
	}
	s.mu.Unlock()
	s.notify()
}

// Login stores the token durably, sets it in memory, and fetches the profile.
// A profile fetch failure is silent here: the token stays set and the caller
// already surfaced any error from the call that produced the token.
func (s *Store) Login(ctx context.Context, token string) {
	if err := s.state.Set(store.KeyToken, token); err != nil {
		s.log.Error(err, "failed to persist token")
	}

	s.mu.Lock()
	s.token = token
	s.user = nil
	s.gen++
	gen := s.gen
	s.mu.Unlock()
	s.notify()

	user, err := s.api.Me(ctx)

	s.mu.Lock()
	stale := s.gen != gen
	if !stale {
		if err == nil {
			s.user = user
		} else {
			s.log.Error(err, "failed to fetch profile after login")
		}
	}
	s.mu.Unlock()
	if !stale {
		s.notify()
	}
}

// Logout clears the session. The in-memory state clears first; removal of the
// persisted token is best-effort and only logged on failure.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.gen++
	s.mu.Unlock()
	s.notify()

	if err := s.state.Delete(store.KeyToken); err != nil {
		s.log.Error(err, "failed to remove persisted token")
	}
}
