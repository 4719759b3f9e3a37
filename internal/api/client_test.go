// internal/api/client_test.go
package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dcs-liberation/theater/internal/dispatcher"
	"github.com/dcs-liberation/theater/internal/handlers"
	"github.com/dcs-liberation/theater/internal/httpapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New("http://localhost:16880", "secret123")

	require.NotNil(t, c)
	assert.Equal(t, "http://localhost:16880", c.baseURL)
	assert.Equal(t, "secret123", c.apiKey)
	assert.NotNil(t, c.httpClient)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:16880/", "secret")
	assert.Equal(t, "http://localhost:16880", c.baseURL)
}

func TestHealthcheck_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/healthcheck", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	assert.NoError(t, New(server.URL, "").Healthcheck())
}

func TestHealthcheck_ServerDown(t *testing.T) {
	c := New("http://127.0.0.1:1", "")
	assert.Error(t, c.Healthcheck())
}

func TestHealthcheck_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	assert.Error(t, New(server.URL, "").Healthcheck())
}

func TestQuery_Request(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/nearest_land", r.URL.Path)
		assert.Equal(t, []string{"15,5", "1"}, r.URL.Query()["arg"])
		assert.Equal(t, "secret", r.Header.Get(httpapi.APIKeyHeader))
		_, _ = w.Write([]byte(`{"command":":NEAREST_LAND:","result":{"x":9,"y":5}}`))
	}))
	defer server.Close()

	got, err := New(server.URL, "secret").Query("nearest_land", "15,5", "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":9,"y":5}`, string(got))
}

func TestQuery_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"control point named \"Batumi\": not found"}`))
	}))
	defer server.Close()

	_, err := New(server.URL, "").Query("cp_named", "Batumi")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "Batumi")
}

func TestQuery_ServerDown(t *testing.T) {
	_, err := New("http://127.0.0.1:1", "").Query("is_on_land", "1,1")
	require.Error(t, err)
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func TestQuery_AgainstServer(t *testing.T) {
	d, err := dispatcher.New(nopLogger{})
	require.NoError(t, err)
	t.Cleanup(d.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers.NewService(handlers.Dependencies{Logger: logger}).Register(d)

	server := httptest.NewServer(httpapi.New(d, logger, "k").Handler())
	defer server.Close()

	_, err = New(server.URL, "wrong").Query("is_on_land", "1,1")
	assert.True(t, IsStatus(err, http.StatusUnauthorized))

	_, err = New(server.URL, "k").Query("is_on_land", "1,1")
	assert.True(t, IsStatus(err, http.StatusServiceUnavailable), "no theater loaded yet")
}
