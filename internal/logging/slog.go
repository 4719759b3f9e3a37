package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

var (
	osStdout io.Writer = os.Stdout
	osPipe             = os.Pipe
)

// SlogManager owns the process logger. Setup may be called again once the
// campaign is known; loggers handed out earlier keep their old sinks.
type SlogManager struct {
	serviceName string
	level       slog.LevelVar

	mu          sync.RWMutex
	logger      *slog.Logger
	context     ContextProvider
	shipper     io.Writer
	logProvider *sdklog.LoggerProvider
}

func NewSlogManager(serviceName string) *SlogManager {
	return &SlogManager{serviceName: serviceName}
}

// SetContextProvider registers attributes added to every record. It takes
// effect on the next Setup.
func (m *SlogManager) SetContextProvider(p ContextProvider) {
	m.mu.Lock()
	m.context = p
	m.mu.Unlock()
}

// SetShipper adds a JSON copy of every record written to w, e.g. a Graylog
// writer from OpenGraylog. It takes effect on the next Setup; nil removes it.
func (m *SlogManager) SetShipper(w io.Writer) {
	m.mu.Lock()
	m.shipper = w
	m.mu.Unlock()
}

// parseLevel accepts slog level names in any case; anything else is info.
func parseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// utcTime renders record times as RFC3339 in UTC.
func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.TimeKey {
		return a
	}
	if t, ok := a.Value.Any().(time.Time); ok {
		a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
	}
	return a
}

// Setup rebuilds the logger. Text records go to file, or stdout when file
// is nil; provider adds the OTel bridge.
func (m *SlogManager) Setup(file io.Writer, level string, provider *sdklog.LoggerProvider) {
	m.level.Set(parseLevel(level))
	if file == nil {
		file = osStdout
	}

	opts := &slog.HandlerOptions{Level: &m.level, ReplaceAttr: utcTime}
	sinks := []slog.Handler{slog.NewTextHandler(file, opts)}
	if provider != nil {
		sinks = append(sinks, otelslog.NewHandler(m.serviceName, otelslog.WithLoggerProvider(provider)))
	}

	m.mu.Lock()
	if m.shipper != nil {
		sinks = append(sinks, slog.NewJSONHandler(m.shipper, opts))
	}
	m.logProvider = provider
	m.logger = slog.New(NewContextHandler(NewMultiHandler(sinks...), m.context))
	logger := m.logger
	m.mu.Unlock()

	logger.Info("Logging initialized", "level", m.level.Level().String())
}

// SetLevel changes the minimum level of the text sink without rebuilding
// the logger.
func (m *SlogManager) SetLevel(level string) {
	m.level.Set(parseLevel(level))
}

// Logger returns the configured logger, or slog.Default before Setup.
func (m *SlogManager) Logger() *slog.Logger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// Flush exports records buffered by the OTel bridge.
func (m *SlogManager) Flush(ctx context.Context) error {
	m.mu.RLock()
	provider := m.logProvider
	m.mu.RUnlock()
	if provider == nil {
		return nil
	}
	return provider.ForceFlush(ctx)
}
