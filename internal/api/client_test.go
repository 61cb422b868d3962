package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefyapp/sefy/internal/logger"
	"github.com/sefyapp/sefy/internal/model"
	"github.com/sefyapp/sefy/internal/store"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token() (string, error) { return s.token, s.err }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Options{Level: "error", Writer: io.Discard})
	require.NoError(t, err)
	return log
}

func newTestClient(t *testing.T, url string, tokens TokenSource) *Client {
	t.Helper()
	return New(Options{
		BaseURL: url,
		Timeout: 2 * time.Second,
		Tokens:  tokens,
		Logger:  testLogger(t),
	})
}

func TestRequestCarriesBearerAndRequestID(t *testing.T) {
	t.Parallel()

	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{"dni":"1","nombre":"Ana","apellido":"García","es_admin":false}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, staticTokens{token: "abc"})

	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestRequestProceedsWithoutTokenOnReadFailure(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"dni":"1","nombre":"Ana"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, staticTokens{err: errors.New("disk gone")})

	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestStoreTokenSourceTreatsUnsetAsEmpty(t *testing.T) {
	t.Parallel()

	st, err := store.New(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	src := StoreTokenSource{Store: st}

	token, err := src.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, st.Set(store.KeyToken, "xyz"))
	token, err = src.Token()
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)
}

func TestStatusErrorPrefersServerDetail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"DNI o nombre incorrectos."}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, staticTokens{})

	_, err := c.Login(context.Background(), "1", "Ana")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CategoryStatus, apiErr.Category)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "DNI o nombre incorrectos.", apiErr.Detail)
	assert.Equal(t, "DNI o nombre incorrectos.", apiErr.UserMessage())
}

func TestTimeoutClassifiedAsTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(Options{
		BaseURL: srv.URL,
		Timeout: 20 * time.Millisecond,
		Tokens:  staticTokens{},
		Logger:  testLogger(t),
	})

	_, err := c.ListObras(context.Background())
	require.Error(t, err)

	apiErr := Classify(err)
	assert.Equal(t, CategoryTimeout, apiErr.Category)
}

func TestUnreachableServerClassifiedAsNoResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := newTestClient(t, srv.URL, staticTokens{})

	_, err := c.ListObras(context.Background())
	require.Error(t, err)

	apiErr := Classify(err)
	assert.Equal(t, CategoryNoResponse, apiErr.Category)
}

func TestMalformedBodyClassifiedAsInvalid(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"dni": `))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, staticTokens{})

	_, err := c.Me(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CategoryInvalid, apiErr.Category)
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, staticTokens{})

	_, err := c.Login(context.Background(), "1", "Ana")
	require.Error(t, err)
}

func TestLoginReturnsToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		w.Write([]byte(`{"access_token":"tok-1"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, staticTokens{})

	token, err := c.Login(context.Background(), "30111222", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestTomarAsistenciaPayload(t *testing.T) {
	t.Parallel()

	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, staticTokens{token: "abc"})

	err := c.TomarAsistencia(context.Background(), "30111222", 4, model.AsistenciaPresente)
	require.NoError(t, err)
	assert.Equal(t, "/asistencias/tomar", gotPath)
	assert.JSONEq(t, `{"dni_usuario":"30111222","id_asignacion":4,"estado":"Presente"}`, gotBody)
}

func TestUpdateAsistenciaSendsNullTimes(t *testing.T) {
	t.Parallel()

	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, staticTokens{token: "abc"})

	a := model.Asistencia{ID: 9, Fecha: "2026-08-31", Estado: model.AsistenciaAusente}
	require.NoError(t, c.UpdateAsistencia(context.Background(), a))
	assert.JSONEq(t, `{"fecha":"2026-08-31","estado":"Ausente","hora_entrada":null,"hora_salida":null}`, gotBody)
}
