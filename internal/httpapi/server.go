// Package httpapi exposes the dispatcher over HTTP.
//
//	GET  /healthcheck
//	GET  /api/v1/commands
//	GET  /api/v1/{command}?arg=x,y&arg=50
//	POST /api/v1/{command}?arg=...
//
// {command} is either the raw command (":NEAREST_LAND:") or its lower-case
// name ("nearest_land").
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dcs-liberation/theater/internal/config"
	"github.com/dcs-liberation/theater/internal/dispatcher"
	"github.com/dcs-liberation/theater/internal/handlers"
	"github.com/dcs-liberation/theater/internal/logging"
	"github.com/dcs-liberation/theater/internal/mission"
	"github.com/dcs-liberation/theater/internal/theater"
	"github.com/gorilla/mux"
)

// APIKeyHeader carries the shared secret when one is configured.
const APIKeyHeader = "X-API-Key"

// Dispatcher is the part of dispatcher.Dispatcher the server needs.
type Dispatcher interface {
	Dispatch(r dispatcher.Request) (any, error)
	HasHandler(command string) bool
	Commands() []string
}

// Response is the body of every API reply.
type Response struct {
	Command string `json:"command,omitempty"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Server routes HTTP requests to dispatcher commands.
type Server struct {
	router     *mux.Router
	dispatcher Dispatcher
	logger     *slog.Logger
	apiKey     string
	hidden     map[string]bool
}

// New creates a server. Requests must carry apiKey in APIKeyHeader unless
// apiKey is empty.
func New(d Dispatcher, logger *slog.Logger, apiKey string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router:     mux.NewRouter(),
		dispatcher: d,
		logger:     logger,
		apiKey:     apiKey,
		hidden:     map[string]bool{handlers.CmdRecordQuery: true},
	}

	s.router.HandleFunc("/healthcheck", s.healthcheck).Methods(http.MethodGet)
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.authenticate)
	api.HandleFunc("/commands", s.listCommands).Methods(http.MethodGet)
	api.HandleFunc("/{command}", s.dispatch).Methods(http.MethodGet, http.MethodPost)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.APIConfig) error {
	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server starting", "addr", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

// CommandName maps a path segment to a dispatcher command.
func CommandName(segment string) string {
	if strings.HasPrefix(segment, ":") {
		return segment
	}
	return ":" + strings.ToUpper(segment) + ":"
}

// StatusFor maps a command error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, handlers.ErrBadArgs):
		return http.StatusBadRequest
	case errors.Is(err, theater.ErrNotFound), errors.Is(err, dispatcher.ErrUnknownCommand):
		return http.StatusNotFound
	case errors.Is(err, theater.ErrEmptyPopulation), errors.Is(err, theater.ErrUnconfiguredGeometry):
		return http.StatusConflict
	case errors.Is(err, mission.ErrNoTheater), errors.Is(err, dispatcher.ErrQueueFull), errors.Is(err, handlers.ErrNoBackend):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.Header.Get(APIKeyHeader) != s.apiKey {
			writeJSON(w, http.StatusUnauthorized, Response{Error: "invalid api key"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) healthcheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Result: "ok"})
}

func (s *Server) listCommands(w http.ResponseWriter, r *http.Request) {
	var cmds []string
	for _, cmd := range s.dispatcher.Commands() {
		if !s.hidden[cmd] {
			cmds = append(cmds, cmd)
		}
	}
	writeJSON(w, http.StatusOK, Response{Result: cmds})
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	command := CommandName(mux.Vars(r)["command"])
	ctx := logging.ContextWithAttrs(r.Context(), slog.String("command", command), slog.String("remote", r.RemoteAddr))
	if s.hidden[command] {
		writeJSON(w, http.StatusNotFound, Response{Command: command, Error: dispatcher.ErrUnknownCommand.Error()})
		return
	}

	result, err := s.dispatcher.Dispatch(dispatcher.Request{
		Command:   command,
		Args:      r.URL.Query()["arg"],
		Timestamp: time.Now(),
	})
	if err != nil {
		status := StatusFor(err)
		if status == http.StatusInternalServerError {
			s.logger.ErrorContext(ctx, "Command failed", "error", err)
		}
		writeJSON(w, status, Response{Command: command, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Response{Command: command, Result: result})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
