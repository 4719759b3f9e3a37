package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, serviceName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", serviceName, sessionStart.Format("20060102_150405")),
	)
}

// OpenLogFile returns a size-rotated writer for path. Rotated files are
// gzipped; maxSizeMB and maxBackups fall back to 50 and 5 when zero.
func OpenLogFile(path string, maxSizeMB, maxBackups int) io.WriteCloser {
	if maxSizeMB <= 0 {
		maxSizeMB = 50
	}
	if maxBackups <= 0 {
		maxBackups = 5
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}
}
