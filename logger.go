package catalog

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the logging surface used by catalogs and scenes. Arguments are
// slog-style alternating keys and values.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// DefaultLogger writes text records through log/slog. Its level can be
// changed after construction.
type DefaultLogger struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

// NewDefaultLogger returns a logger writing to stderr at the given level.
func NewDefaultLogger(level slog.Level) *DefaultLogger {
	return NewLogger(os.Stderr, level)
}

// NewLogger returns a logger writing text records to w.
func NewLogger(w io.Writer, level slog.Level) *DefaultLogger {
	lv := new(slog.LevelVar)
	lv.Set(level)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lv,
	}))
	return &DefaultLogger{logger: logger, level: lv}
}

// SetLevel changes the minimum level that is written.
func (d *DefaultLogger) SetLevel(level slog.Level) {
	d.level.Set(level)
}

// Level returns the current minimum level.
func (d *DefaultLogger) Level() slog.Level {
	return d.level.Level()
}

const logPrefix = "[catalog] "

func (d *DefaultLogger) Debug(msg string, args ...any) {
	d.logger.Debug(logPrefix+msg, args...)
}

func (d *DefaultLogger) Info(msg string, args ...any) {
	d.logger.Info(logPrefix+msg, args...)
}

func (d *DefaultLogger) Warn(msg string, args ...any) {
	d.logger.Warn(logPrefix+msg, args...)
}

func (d *DefaultLogger) Error(msg string, args ...any) {
	d.logger.Error(logPrefix+msg, args...)
}
