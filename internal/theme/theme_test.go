package theme

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefyapp/sefy/internal/logger"
	"github.com/sefyapp/sefy/internal/store"
)

func newTestManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	log, err := logger.New(logger.Options{Level: "error", Writer: io.Discard})
	require.NoError(t, err)

	return NewManager(st, log), st
}

func TestDefaultsToLight(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t)
	assert.Equal(t, Light, m.ActiveName())
	assert.Equal(t, LightPalette, m.Active())
}

func TestSelectUnknownNameIsIgnored(t *testing.T) {
	t.Parallel()

	m, st := newTestManager(t)
	m.Select("sepia")

	assert.Equal(t, Light, m.ActiveName())
	_, err := st.Get(store.KeyThemeName)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSelectPersistsChoice(t *testing.T) {
	t.Parallel()

	m, st := newTestManager(t)
	m.Select(Dark)

	assert.Equal(t, Dark, m.ActiveName())
	assert.Equal(t, DarkPalette, m.Active())

	saved, err := st.Get(store.KeyThemeName)
	require.NoError(t, err)
	assert.Equal(t, "dark", saved)
}

func TestUpdateCustomForcesCustomActive(t *testing.T) {
	t.Parallel()

	m, st := newTestManager(t)
	m.Select(Dark)

	m.UpdateCustom(map[Role]string{RolePrimary: "#111111"})

	assert.Equal(t, Custom, m.ActiveName())
	assert.Equal(t, "#111111", m.Active().Primary)
	// Untouched roles keep their previous custom values.
	assert.Equal(t, DefaultCustom.Background, m.Active().Background)

	saved, err := st.Get(store.KeyThemeName)
	require.NoError(t, err)
	assert.Equal(t, "custom", saved)
}

func TestUpdateCustomIsIdempotent(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t)

	m.UpdateCustom(map[Role]string{RolePrimary: "#111111"})
	first := m.Active()

	m.UpdateCustom(map[Role]string{RolePrimary: "#111111"})
	assert.Equal(t, first, m.Active())
}

func TestRestoreAppliesPersistedState(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	st, err := store.New(path)
	require.NoError(t, err)
	log, err := logger.New(logger.Options{Level: "error", Writer: io.Discard})
	require.NoError(t, err)

	first := NewManager(st, log)
	first.UpdateCustom(map[Role]string{RoleCard: "#ABCDEF"})

	reopened, err := store.New(path)
	require.NoError(t, err)
	second := NewManager(reopened, log)
	second.Restore()

	assert.Equal(t, Custom, second.ActiveName())
	assert.Equal(t, "#ABCDEF", second.Active().Card)
}

func TestRestoreBackfillsMissingRoles(t *testing.T) {
	t.Parallel()

	m, st := newTestManager(t)

	// A partially persisted palette, e.g. written by an older build.
	require.NoError(t, st.Set(store.KeyCustomTheme, `{"primary":"#101010"}`))
	require.NoError(t, st.Set(store.KeyThemeName, "custom"))

	m.Restore()

	active := m.Active()
	assert.Equal(t, "#101010", active.Primary)
	assert.Equal(t, DefaultCustom.Background, active.Background)
	assert.Equal(t, DefaultCustom.Card, active.Card)
}

func TestRestoreIgnoresUnknownPersistedName(t *testing.T) {
	t.Parallel()

	m, st := newTestManager(t)
	require.NoError(t, st.Set(store.KeyThemeName, "solarized"))

	m.Restore()
	assert.Equal(t, Light, m.ActiveName())
}

func TestRestoreIgnoresCorruptCustomPalette(t *testing.T) {
	t.Parallel()

	m, st := newTestManager(t)
	require.NoError(t, st.Set(store.KeyCustomTheme, "{broken"))

	m.Restore()
	assert.Equal(t, DefaultCustom, m.CustomPalette())
}

func TestStylesFollowActivePalette(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t)
	m.Select(Dark)

	styles := m.Styles()
	assert.Equal(t, DarkPalette.Primary, string(styles.Title.GetForeground().(lipgloss.Color)))
}
