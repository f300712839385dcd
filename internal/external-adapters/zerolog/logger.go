// Package zerolog adapts github.com/rs/zerolog to the domain Logger interface.
package zerolog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/newrelic/nrdot-release-metrics/internal/domain/interfaces"
)

// Config holds logger configuration
type Config struct {
	Level   string // trace|debug|info|warn|error
	Format  string // console|json
	Service string
	Version string
	Output  io.Writer // defaults to os.Stderr
}

var _ interfaces.Logger = (*Logger)(nil)

// Logger implements interfaces.Logger on top of zerolog
type Logger struct {
	zl zerolog.Logger
}

// New creates a structured logger
func New(cfg Config) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	if cfg.Version != "" {
		ctx = ctx.Str("version", cfg.Version)
	}

	return &Logger{zl: ctx.Logger()}
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	withFields(l.zl.Debug(), fields).Msg(msg)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	withFields(l.zl.Info(), fields).Msg(msg)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	withFields(l.zl.Warn(), fields).Msg(msg)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	withFields(l.zl.Error(), fields).Msg(msg)
}

func withFields(ev *zerolog.Event, fields []interfaces.Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			ev = ev.AnErr(f.Key, v)
		case string:
			ev = ev.Str(f.Key, v)
		case int:
			ev = ev.Int(f.Key, v)
		case int64:
			ev = ev.Int64(f.Key, v)
		case []string:
			ev = ev.Strs(f.Key, v)
		default:
			ev = ev.Interface(f.Key, v)
		}
	}
	return ev
}
