package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return s
}

func TestGetMissingKeyReturnsErrNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.Get(KeyToken)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSetThenGetRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	require.NoError(t, s.Set(KeyToken, "abc"))

	got, err := s.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestValuesSurviveReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyThemeName, "dark"))
	require.NoError(t, s.Set(KeyToken, "xyz"))

	reloaded, err := New(path)
	require.NoError(t, err)

	theme, err := reloaded.Get(KeyThemeName)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	token, err := reloaded.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)
}

func TestDeleteRemovesKey(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	require.NoError(t, s.Set(KeyToken, "abc"))
	require.NoError(t, s.Delete(KeyToken))

	_, err := s.Get(KeyToken)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAbsentKeyIsNoop(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.NoError(t, s.Delete("never-set"))
}

func TestCorruptStateFileFailsLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := New(path)
	require.Error(t, err)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "state.json"))
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyToken, "abc"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}
