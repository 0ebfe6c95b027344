// Package logging builds the application's zerolog logger: readable console
// output on stderr and an optional JSON file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "15:04:05"

// Config selects the log level and destinations.
type Config struct {
	Level   string
	File    string
	Console io.Writer
}

// Logger is the root logger plus the file it writes to, if any.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New builds a logger from cfg. A file that cannot be opened is reported
// on the console logger and skipped.
func New(cfg Config) *Logger {
	zerolog.ErrorFieldName = "err"

	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: consoleTimeFormat}}

	var file *os.File
	var fileErr error
	if path := strings.TrimSpace(cfg.File); path != "" {
		file, fileErr = openLogFile(path)
		if fileErr == nil {
			writers = append(writers, zerolog.SyncWriter(file))
		}
	}

	root := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(cfg.Level)).
		With().Timestamp().Logger()
	if fileErr != nil {
		root.Warn().Err(fileErr).Msg("log file disabled")
	}
	return &Logger{Logger: root, file: file}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Close releases the log file.
func (logger *Logger) Close() error {
	if logger.file == nil {
		return nil
	}
	err := logger.file.Close()
	logger.file = nil
	return err
}

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
