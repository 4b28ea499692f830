package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger    = zerolog.New(io.Discard)
	debugFile *os.File
	mu        sync.RWMutex
)

// ParseLogLevel maps a level name to a zerolog level.
func ParseLogLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "off", "disabled":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q, only trace/debug/info/warn/error/off is allowed", s)
}

// ConfigureLogger sends log output to w in console format. When dir is not
// empty a debug-<timestamp>.log file is created there and receives a copy of
// every entry.
func ConfigureLogger(w io.Writer, level zerolog.Level, dir string) error {
	mu.Lock()
	defer mu.Unlock()

	closeDebugFileLocked()

	var out io.Writer = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create logs dir: %w", err)
		}
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("debug-%s.log", time.Now().Format("20060102-150405"))))
		if err != nil {
			return fmt.Errorf("failed to create debug log: %w", err)
		}
		debugFile = f
		out = zerolog.MultiLevelWriter(out, f)
	}

	logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return nil
}

// Logger returns the process logger.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// Debug writes a formatted debug-level message.
func Debug(format string, args ...any) {
	Logger().Debug().Msgf(format, args...)
}

// CloseLogger flushes and closes the debug file, if any, and discards
// further output.
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()
	closeDebugFileLocked()
	logger = zerolog.New(io.Discard)
}

func closeDebugFileLocked() {
	if debugFile != nil {
		_ = debugFile.Close()
		debugFile = nil
	}
}
