// Package logging builds the run logger: one file sink and one console sink
// sharing the same line format ("2006/01/02 15:04:05 LEVEL: message").
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp layout of every log line.
const TimeLayout = "2006/01/02 15:04:05"

// Level names accepted on the command line, lowest first.
var levelNames = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}

var levels = map[string]zapcore.Level{
	"DEBUG":    zapcore.DebugLevel,
	"INFO":     zapcore.InfoLevel,
	"WARNING":  zapcore.WarnLevel,
	"ERROR":    zapcore.ErrorLevel,
	"CRITICAL": zapcore.DPanicLevel,
}

// LevelNames returns the accepted level names.
func LevelNames() []string {
	out := make([]string, len(levelNames))
	copy(out, levelNames)
	return out
}

// ParseLevel maps a level name to its zap level. An empty name means INFO.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, ok := levels[strings.ToUpper(name)]
	if !ok {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q (choose from %s)", name, strings.Join(levelNames, ", "))
	}
	return lvl, nil
}

// levelName is the inverse of ParseLevel; zap's panic/fatal levels all read CRITICAL.
func levelName(l zapcore.Level) string {
	switch {
	case l <= zapcore.DebugLevel:
		return "DEBUG"
	case l == zapcore.InfoLevel:
		return "INFO"
	case l == zapcore.WarnLevel:
		return "WARNING"
	case l == zapcore.ErrorLevel:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(levelName(l) + ":")
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeLevel:      encodeLevel,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// Logger is the explicit logging context handed to each component of a run.
type Logger struct {
	*zap.SugaredLogger
	file *os.File
}

// Open removes any previous log at path, then returns a logger writing to
// both the file at path and console. The caller owns Close.
func Open(path string, level zapcore.Level, console io.Writer) (*Logger, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove previous log %s: %w", path, err)
	}
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}

	sinks := []zapcore.Core{zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(fh), level)}
	if console != nil {
		sinks = append(sinks, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig()),
			zapcore.Lock(zapcore.AddSync(console)),
			level,
		))
	}
	return &Logger{SugaredLogger: zap.New(zapcore.NewTee(sinks...)).Sugar(), file: fh}, nil
}

// New wraps an arbitrary writer, mostly for tests and tools that do not own a log file.
func New(w io.Writer, level zapcore.Level) *Logger {
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(w), level)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// Criticalf logs at CRITICAL without panicking (zap only panics on DPanic in development mode).
func (l *Logger) Criticalf(format string, args ...any) {
	l.DPanicf(format, args...)
}

// Close flushes and closes the log file. Console sinks are left alone:
// syncing a terminal fails on several platforms.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := multierr.Combine(l.file.Sync(), l.file.Close())
	l.file = nil
	return err
}
