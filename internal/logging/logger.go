// Package logging is a thin structured logger over zap.
package logging

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	return toZapLevel(l).String()
}

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Field is a typed key/value pair.
type Field = zap.Field

func String(key, val string) Field { return zap.String(key, val) }

func Int(key string, val int) Field { return zap.Int(key, val) }

func Uint64(key string, val uint64) Field { return zap.Uint64(key, val) }

func Float64(key string, val float64) Field { return zap.Float64(key, val) }

func Bool(key string, val bool) Field { return zap.Bool(key, val) }

func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }

func Any(key string, val any) Field { return zap.Any(key, val) }

func Error(err error) Field { return zap.Error(err) }

var (
	first     *Logger
	firstOnce sync.Once
)

type Logger struct {
	z     *zap.Logger
	level zap.AtomicLevel
}

// New builds a JSON logger writing to stderr. The first logger built in
// the process is also returned by Provide.
func New(level Level) *Logger {
	atom := zap.NewAtomicLevelAt(toZapLevel(level))
	cfg := zap.Config{
		Level:       atom,
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	z, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	l := &Logger{z: z, level: atom}
	firstOnce.Do(func() { first = l })
	return l
}

// NewWithCore wraps an existing core, mostly for tests.
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{z: zap.New(core), level: zap.NewAtomicLevelAt(zap.DebugLevel)}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{z: zap.NewNop(), level: zap.NewAtomicLevelAt(zap.ErrorLevel)}
}

// Provide returns the first logger built by New, or a no-op logger.
func Provide() *Logger {
	if first == nil {
		return Nop()
	}
	return first
}

func (l *Logger) Debug(msg string, fields ...Field) {
	l.z.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...Field) {
	l.z.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...Field) {
	l.z.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...Field) {
	l.z.Error(msg, fields...)
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{z: l.z.With(fields...), level: l.level}
}

// Named adds a component name to every entry.
func (l *Logger) Named(name string) *Logger {
	return &Logger{z: l.z.Named(name), level: l.level}
}

func (l *Logger) SetLevel(level Level) { l.level.SetLevel(toZapLevel(level)) }

// Enabled reports whether entries at level are written.
func (l *Logger) Enabled(level Level) bool {
	return l.z.Core().Enabled(toZapLevel(level))
}

func (l *Logger) Sync() error { return l.z.Sync() }

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zap.DebugLevel
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
