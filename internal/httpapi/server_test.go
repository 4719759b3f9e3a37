package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dcs-liberation/theater/internal/campaign"
	"github.com/dcs-liberation/theater/internal/config"
	"github.com/dcs-liberation/theater/internal/dispatcher"
	"github.com/dcs-liberation/theater/internal/handlers"
	"github.com/dcs-liberation/theater/internal/mission"
	"github.com/dcs-liberation/theater/internal/region"
	"github.com/dcs-liberation/theater/internal/theater"
	"github.com/dcs-liberation/theater/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeDispatcher answers every command with a fixed result or error.
type fakeDispatcher struct {
	result any
	err    error
	last   dispatcher.Request
}

func (f *fakeDispatcher) Dispatch(r dispatcher.Request) (any, error) {
	f.last = r
	return f.result, f.err
}

func (f *fakeDispatcher) HasHandler(string) bool { return true }

func (f *fakeDispatcher) Commands() []string {
	return []string{handlers.CmdIsOnLand, handlers.CmdRecordQuery}
}

func get(t *testing.T, h http.Handler, target string, header http.Header) (int, Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	return rec.Code, body
}

func TestCommandName(t *testing.T) {
	assert.Equal(t, ":NEAREST_LAND:", CommandName("nearest_land"))
	assert.Equal(t, ":NEAREST_LAND:", CommandName(":NEAREST_LAND:"))
	assert.Equal(t, ":CP_NAMED:", CommandName("CP_NAMED"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{fmt.Errorf("%w: missing argument 0", handlers.ErrBadArgs), http.StatusBadRequest},
		{fmt.Errorf("control point named %q: %w", "x", theater.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: :NOPE:", dispatcher.ErrUnknownCommand), http.StatusNotFound},
		{theater.ErrEmptyPopulation, http.StatusConflict},
		{theater.ErrNoLandmap, http.StatusConflict},
		{mission.ErrNoTheater, http.StatusServiceUnavailable},
		{dispatcher.ErrQueueFull, http.StatusServiceUnavailable},
		{handlers.ErrNoBackend, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestDispatch_PassesArgs(t *testing.T) {
	d := &fakeDispatcher{result: core.Point{X: 9, Y: 5}}
	s := New(d, discard, "")

	code, body := get(t, s.Handler(), "/api/v1/nearest_land?arg=15,5&arg=1", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, handlers.CmdNearestLand, body.Command)
	assert.Equal(t, map[string]any{"x": 9.0, "y": 5.0}, body.Result)

	assert.Equal(t, handlers.CmdNearestLand, d.last.Command)
	assert.Equal(t, []string{"15,5", "1"}, d.last.Args)
	assert.False(t, d.last.Timestamp.IsZero())
}

func TestDispatch_Error(t *testing.T) {
	d := &fakeDispatcher{err: fmt.Errorf("%w: missing argument 0", handlers.ErrBadArgs)}
	s := New(d, discard, "")

	code, body := get(t, s.Handler(), "/api/v1/is_on_land", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body.Error, "missing argument")
	assert.Nil(t, body.Result)
}

func TestDispatch_HiddenCommand(t *testing.T) {
	d := &fakeDispatcher{result: "queued"}
	s := New(d, discard, "")

	code, _ := get(t, s.Handler(), "/api/v1/record_query?arg={}", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Empty(t, d.last.Command)
}

func TestListCommands(t *testing.T) {
	s := New(&fakeDispatcher{}, discard, "")

	code, body := get(t, s.Handler(), "/api/v1/commands", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{handlers.CmdIsOnLand}, body.Result)
}

func TestAPIKey(t *testing.T) {
	s := New(&fakeDispatcher{result: true}, discard, "hunter2")

	code, body := get(t, s.Handler(), "/api/v1/is_on_land?arg=1,1", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid api key", body.Error)

	code, body = get(t, s.Handler(), "/api/v1/is_on_land?arg=1,1", http.Header{APIKeyHeader: {"hunter2"}})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body.Result)

	// healthcheck stays open
	code, _ = get(t, s.Handler(), "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := New(&fakeDispatcher{}, discard, "")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/is_on_land", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func TestServer_WithHandlers(t *testing.T) {
	d, err := dispatcher.New(nopLogger{})
	require.NoError(t, err)
	t.Cleanup(d.Close)

	svc := handlers.NewService(handlers.Dependencies{Logger: discard})
	svc.Register(d)
	s := New(d, discard, "")

	code, body := get(t, s.Handler(), "/api/v1/is_on_land?arg=1,1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body.Error, mission.ErrNoTheater.Error())

	r, err := region.Default().Lookup("Syria")
	require.NoError(t, err)
	th := theater.New(r, nil)
	th.AddControlPoint(core.NewControlPoint("Incirlik", core.Point{X: 1, Y: 1}, true))
	svc.Activate(&campaign.Campaign{Name: "Test"}, th)

	code, body = get(t, s.Handler(), "/api/v1/is_on_land?arg=1,1", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body.Result)

	code, _ = get(t, s.Handler(), "/api/v1/cp_named?arg=Hatay", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get(t, s.Handler(), "/api/v1/closest_opposing", nil)
	assert.Equal(t, http.StatusConflict, code)

	// without a landmap every point is land
	code, body = get(t, s.Handler(), "/api/v1/nearest_land?arg=1,1", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"x": 1.0, "y": 1.0}, body.Result)

	code, _ = get(t, s.Handler(), "/api/v1/save_control_points", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestListenAndServe_Shutdown(t *testing.T) {
	s := New(&fakeDispatcher{result: true}, discard, "")
	addr := freeAddr(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.ListenAndServe(ctx, config.APIConfig{Listen: addr, ReadTimeout: time.Second, WriteTimeout: time.Second})
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthcheck")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
