// ABOUTME: Debug logger that writes to a rotating file under the config dir
// ABOUTME: Keeps diagnostics out of the terminal owned by the CLI and TUI

package debuglog

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the debug log.
type Options struct {
	Dir        string // empty disables logging
	FileName   string // default "debug.log"
	Level      string // logrus level name, default "info"
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu      sync.Mutex
	logger  = newDiscardLogger()
	rotator *lumberjack.Logger
)

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init points the debug logger at Dir/FileName.
// If Dir is empty, logging is disabled
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	if opts.Dir == "" {
		return nil
	}

	if err := os.MkdirAll(opts.Dir, 0700); err != nil {
		return err
	}

	name := opts.FileName
	if name == "" {
		name = "debug.log"
	}

	rotator = &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, name),
		MaxSize:    orDefault(opts.MaxSizeMB, 10),
		MaxBackups: orDefault(opts.MaxBackups, 3),
		MaxAge:     orDefault(opts.MaxAgeDays, 28),
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	l := logrus.New()
	l.SetOutput(rotator)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	logger = l
	return nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Close flushes and closes the log file. Later calls log nowhere.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if rotator != nil {
		rotator.Close()
		rotator = nil
	}
	logger = newDiscardLogger()
}

func current() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Log writes an info message to the debug log
func Log(format string, args ...interface{}) {
	current().Infof(format, args...)
}

// Debug writes a debug message
func Debug(format string, args ...interface{}) {
	current().Debugf(format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	current().Warnf(format, args...)
}

// Error logs an error with context
func Error(context string, err error) {
	if err == nil {
		return
	}
	current().WithField("context", context).Error(err.Error())
}

// WithField returns an entry carrying key=value on every message.
func WithField(key string, value interface{}) *logrus.Entry {
	return current().WithField(key, value)
}

// Path returns the active log file, or "" when logging is disabled.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return ""
	}
	return rotator.Filename
}
