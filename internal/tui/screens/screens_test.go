package screens

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/sefyapp/sefy/internal/app"
	"github.com/sefyapp/sefy/internal/config"
	"github.com/sefyapp/sefy/internal/logger"
)

// newTestContext wires a full service graph against an in-process backend and
// a throwaway state directory.
func newTestContext(t *testing.T, handler http.Handler) *app.Context {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log, err := logger.New(logger.Options{Level: "error", Writer: io.Discard})
	require.NoError(t, err)

	cfg := &config.Config{
		APIURL:         srv.URL,
		TimeoutSeconds: 5,
		LogLevel:       "error",
		StateDir:       t.TempDir(),
	}

	ctx, err := app.New(cfg, log)
	require.NoError(t, err)
	return ctx
}

// drain executes a command tree and collects every produced message.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, sub := range batch {
			msgs = append(msgs, drain(sub)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type T produced by a command tree.
func findMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()

	for _, msg := range drain(cmd) {
		if typed, ok := msg.(T); ok {
			return typed
		}
	}

	var zero T
	t.Fatalf("command produced no %T message", zero)
	return zero
}
