package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginCommandStoresToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "30111222", payload["dni"])
		require.Equal(t, "Ana", payload["nombre"])
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-fresh"})
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"dni": "30111222", "nombre": "Ana", "apellido": "García"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	stateDir := t.TempDir()
	t.Setenv("SEFY_STATE_DIR", stateDir)
	t.Setenv("SEFY_API_URL", srv.URL)
	t.Setenv("SEFY_LOG_LEVEL", "error")

	stdout, err := executeCommand(t, "login", "--dni", "30111222", "--nombre", "Ana")
	require.NoError(t, err)
	require.Contains(t, stdout, "Ana García")

	data, err := os.ReadFile(filepath.Join(stateDir, "state.json"))
	require.NoError(t, err)

	var state struct {
		Values map[string]string `json:"values"`
	}
	require.NoError(t, json.Unmarshal(data, &state))
	require.Equal(t, "tok-fresh", state.Values["token"])
}

func TestLoginCommandRejectsBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Credenciales inválidas"})
	}))
	t.Cleanup(srv.Close)

	t.Setenv("SEFY_STATE_DIR", t.TempDir())
	t.Setenv("SEFY_API_URL", srv.URL)
	t.Setenv("SEFY_LOG_LEVEL", "error")

	_, err := executeCommand(t, "login", "--dni", "1", "--nombre", "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Credenciales inválidas")
}

func TestLogoutCommandRemovesToken(t *testing.T) {
	srv := httptest.NewServer(http.NewServeMux())
	t.Cleanup(srv.Close)
	setupCommandEnv(t, srv.URL)

	stdout, err := executeCommand(t, "logout")
	require.NoError(t, err)
	require.Contains(t, stdout, "Sesión cerrada")

	data, err := os.ReadFile(filepath.Join(os.Getenv("SEFY_STATE_DIR"), "state.json"))
	require.NoError(t, err)
	require.NotContains(t, string(data), "tok-cli")
}

func TestWhoamiCommandJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-cli", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"dni": "30111222", "nombre": "Ana", "apellido": "García", "es_admin": true})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	setupCommandEnv(t, srv.URL)

	stdout, err := executeCommand(t, "whoami", "--json")
	require.NoError(t, err)

	var usuario map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &usuario))
	require.Equal(t, "30111222", usuario["dni"])
	require.Equal(t, true, usuario["es_admin"])
}
