package screens

import (
	"encoding/json"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginBackend(t *testing.T, esAdmin bool) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if payload["dni"] != "30111222" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Credenciales inválidas"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"dni": "30111222", "nombre": "Ana", "apellido": "García", "es_admin": esAdmin,
		})
	})
	return mux
}

func TestLoginSubmitSuccess(t *testing.T) {
	ctx := newTestContext(t, loginBackend(t, false))

	m := NewLogin(ctx)
	m.form.SetValue(0, "30111222")
	m.form.SetValue(1, "Ana")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	login, ok := updated.(Login)
	require.True(t, ok)
	assert.True(t, login.loading)
	require.NotNil(t, cmd)

	done := findMsg[loginDoneMsg](t, cmd)
	assert.NoError(t, done.err)

	snap := ctx.Session.Snapshot()
	assert.Equal(t, "tok-123", snap.Token)
	require.NotNil(t, snap.User)
	assert.Equal(t, "Ana García", snap.User.FullName())
}

func TestLoginSubmitBadCredentials(t *testing.T) {
	ctx := newTestContext(t, loginBackend(t, false))

	m := NewLogin(ctx)
	m.form.SetValue(0, "99999999")
	m.form.SetValue(1, "Ana")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	done := findMsg[loginDoneMsg](t, cmd)
	require.Error(t, done.err)

	after, _ := updated.Update(done)
	login, ok := after.(Login)
	require.True(t, ok)
	assert.False(t, login.loading)
	assert.Contains(t, login.alert.Message, "Credenciales inválidas")
	assert.Empty(t, ctx.Session.Snapshot().Token)
}

func TestLoginSubmitRequiresBothFields(t *testing.T) {
	ctx := newTestContext(t, loginBackend(t, false))

	m := NewLogin(ctx)
	m.form.SetValue(0, "30111222")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	login, ok := updated.(Login)
	require.True(t, ok)

	assert.Nil(t, cmd)
	assert.False(t, login.loading)
	assert.NotEmpty(t, login.alert.Message)
}

func TestLoginPushesRegister(t *testing.T) {
	ctx := newTestContext(t, loginBackend(t, false))

	m := NewLogin(ctx)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)

	push := findMsg[PushMsg](t, cmd)
	_, ok := push.Screen.(Register)
	assert.True(t, ok)
}
