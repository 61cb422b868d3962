package session

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefyapp/sefy/internal/logger"
	"github.com/sefyapp/sefy/internal/model"
	"github.com/sefyapp/sefy/internal/store"
)

type fakeAPI struct {
	mu      sync.Mutex
	user    *model.Usuario
	err     error
	calls   int
	started chan struct{} // closed on first call when non-nil
	release chan struct{} // when non-nil, Me blocks until closed
}

func (f *fakeAPI) Me(ctx context.Context) (*model.Usuario, error) {
	f.mu.Lock()
	f.calls++
	if f.started != nil && f.calls == 1 {
		close(f.started)
	}
	release := f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user, f.err
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestSession(t *testing.T, api ProfileFetcher) (*Store, *store.Store) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	log, err := logger.New(logger.Options{Level: "error", Writer: io.Discard})
	require.NoError(t, err)

	return New(st, api, log), st
}

func TestInitialStateIsLoading(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, &fakeAPI{})

	snap := s.Snapshot()
	assert.True(t, snap.Loading)
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.User)
}

func TestRestoreWithoutTokenEndsUnauthenticated(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	s, _ := newTestSession(t, api)

	s.Restore(context.Background())

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.False(t, snap.Authenticated())
	assert.Equal(t, 0, api.callCount(), "no network call without a persisted token")
}

func TestRestoreWithTokenFetchesProfile(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{user: &model.Usuario{DNI: "1", Nombre: "Ana", EsAdmin: true}}
	s, st := newTestSession(t, api)
	require.NoError(t, st.Set(store.KeyToken, "abc"))

	s.Restore(context.Background())

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, "abc", snap.Token)
	require.NotNil(t, snap.User)
	assert.True(t, snap.User.EsAdmin)
}

func TestRestoreKeepsTokenWhenProfileFetchFails(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{err: errors.New("backend down")}
	s, st := newTestSession(t, api)
	require.NoError(t, st.Set(store.KeyToken, "abc"))

	s.Restore(context.Background())

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, "abc", snap.Token, "a transient profile failure must not force logout")
	assert.Nil(t, snap.User)
}

func TestLoginPersistsTokenAndSetsUser(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{user: &model.Usuario{DNI: "1", Nombre: "Ana"}}
	s, st := newTestSession(t, api)

	s.Login(context.Background(), "xyz")

	snap := s.Snapshot()
	assert.Equal(t, "xyz", snap.Token)
	require.NotNil(t, snap.User)

	persisted, err := st.Get(store.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "xyz", persisted)
}

func TestLoginSilentOnProfileFetchFailure(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{err: errors.New("boom")}
	s, _ := newTestSession(t, api)

	s.Login(context.Background(), "xyz")

	snap := s.Snapshot()
	assert.Equal(t, "xyz", snap.Token)
	assert.Nil(t, snap.User)
}

func TestLogoutClearsEverything(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{user: &model.Usuario{DNI: "1"}}
	s, st := newTestSession(t, api)

	s.Login(context.Background(), "xyz")
	s.Logout()

	snap := s.Snapshot()
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.User)

	_, err := st.Get(store.KeyToken)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLoginLogoutRestoreEndsUnauthenticated(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{user: &model.Usuario{DNI: "1"}}
	s, _ := newTestSession(t, api)

	s.Login(context.Background(), "xyz")
	s.Logout()
	s.Restore(context.Background())

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.False(t, snap.Authenticated())
}

func TestStaleProfileResponseIsDiscarded(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{user: &model.Usuario{DNI: "1", Nombre: "Ana"}, started: started, release: release}
	s, _ := newTestSession(t, api)

	done := make(chan struct{})
	go func() {
		s.Login(context.Background(), "old-token")
		close(done)
	}()

	// Logout while the profile fetch is still in flight.
	<-started
	s.Logout()
	close(release)
	<-done

	snap := s.Snapshot()
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.User, "a stale response must not resurrect the session")
}

func TestSubscribersSeeEveryTransition(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{user: &model.Usuario{DNI: "1"}}
	s, _ := newTestSession(t, api)

	var mu sync.Mutex
	var snaps []Snapshot
	s.Subscribe(func(snap Snapshot) {
		mu.Lock()
		snaps = append(snaps, snap)
		mu.Unlock()
	})

	s.Restore(context.Background())
	s.Login(context.Background(), "xyz")
	s.Logout()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, snaps)
	last := snaps[len(snaps)-1]
	assert.False(t, last.Authenticated())
}
