package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dcs-liberation/theater/internal/config"
	"github.com/dcs-liberation/theater/internal/logging"
	intOtel "github.com/dcs-liberation/theater/internal/otel"

	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	ServiceName string = "theater"
)

var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	// LogFile is the rotating log file of the current session, nil until setupLogging
	LogFile io.WriteCloser

	// Graylog receives a JSON copy of every record when logGraylog is set
	Graylog io.WriteCloser

	SessionStartTime time.Time = time.Now()
)

const usage = `usage: theater <command> [flags]

commands:
  serve            load a campaign and answer theater queries over HTTP
  query            send one query to a running server
  check-campaigns  list campaigns and their format compatibility
  version          print the version
`

func main() {
	SlogManager = logging.NewSlogManager(ServiceName)
	SlogManager.Setup(nil, "info", nil)
	Logger = SlogManager.Logger()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "query":
		err = runQuery(os.Args[2:], os.Stdout)
	case "check-campaigns":
		err = runCheckCampaigns(os.Args[2:], os.Stdout)
	case "version":
		fmt.Printf("%s %s (built %s)\n", ServiceName, CurrentVersion, BuildDate)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		Logger.Error("Command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

// loadConfig reads theater.cfg.json from dir. A missing file leaves the
// defaults in place.
func loadConfig(dir string) {
	if err := config.Load(dir); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config", "dir", dir)
	}
}

// setupLogging opens the session log file and re-creates the slog logger
// with it and, if enabled, the OTel bridge.
func setupLogging() {
	logCfg := config.GetLogConfig()
	if err := os.MkdirAll(logCfg.Dir, 0755); err != nil {
		Logger.Error("Failed to create logs directory", "error", err, "path", logCfg.Dir)
	}

	logPath := logging.LogFilePath(logCfg.Dir, ServiceName, SessionStartTime)
	LogFile = logging.OpenLogFile(logPath, logCfg.MaxSizeMB, logCfg.MaxBackups)
	Logger.Info("Begin logging in logs directory", "path", logPath)

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		var err error
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:        otelCfg.Enabled,
			ServiceName:    otelCfg.ServiceName,
			ServiceVersion: CurrentVersion,
			BatchTimeout:   otelCfg.BatchTimeout,
			LogWriter:      LogFile,
			Endpoint:       otelCfg.Endpoint,
			Insecure:       otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		} else {
			Logger.Info("OTel provider initialized", "file", logPath, "endpoint", otelCfg.Endpoint)
		}
	}

	if logCfg.Graylog != "" && Graylog == nil {
		w, err := logging.OpenGraylog(logCfg.Graylog, ServiceName)
		if err != nil {
			Logger.Warn("Graylog shipping disabled", "error", err)
		} else {
			Graylog = w
			SlogManager.SetShipper(Graylog)
		}
	}

	SlogManager.Setup(LogFile, logCfg.Level, otelLogProvider())
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", logPath, "version", CurrentVersion)
}

func otelLogProvider() *sdklog.LoggerProvider {
	if OTelProvider == nil {
		return nil
	}
	return OTelProvider.LoggerProvider()
}

// dispatcherLogger writes dispatcher events as JSON lines to the session
// log file, or stderr before logging is set up.
func dispatcherLogger() *logging.DispatcherLogger {
	var out io.Writer = os.Stderr
	if LogFile != nil {
		out = LogFile
	}
	return logging.NewDispatcherLogger(logging.NewZerolog(out, config.GetLogConfig().Level, "dispatcher"))
}

// closeLogging flushes pending records and releases the log file.
func closeLogging() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := SlogManager.Flush(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to flush logs: %v\n", err)
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to shut down OTel provider: %v\n", err)
		}
	}
	if Graylog != nil {
		_ = Graylog.Close()
	}
	if LogFile != nil {
		_ = LogFile.Close()
	}
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
