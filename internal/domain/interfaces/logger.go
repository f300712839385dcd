// Package interfaces defines core domain contracts.
//
//nolint:revive // Package name 'interfaces' is intentional for domain layer
package interfaces

// Logger defines the interface for structured logging
type Logger interface {
	// Debug logs debug-level messages
	Debug(msg string, fields ...Field)

	// Info logs informational messages
	Info(msg string, fields ...Field)

	// Warn logs warning messages
	Warn(msg string, fields ...Field)

	// Error logs error messages
	Error(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field (convenience function)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// NoOpLogger is a logger that does nothing (useful for tests)
type NoOpLogger struct{}

// Debug does nothing (no-op implementation)
func (n *NoOpLogger) Debug(_ string, _ ...Field) {}

// Info does nothing (no-op implementation)
func (n *NoOpLogger) Info(_ string, _ ...Field) {}

// Warn does nothing (no-op implementation)
func (n *NoOpLogger) Warn(_ string, _ ...Field) {}

// Error does nothing (no-op implementation)
func (n *NoOpLogger) Error(_ string, _ ...Field) {}

// Entry is a log line captured by RecordingLogger
type Entry struct {
	Level  string
	Msg    string
	Fields map[string]interface{}
}

// RecordingLogger keeps every log line in memory so tests can assert on them
type RecordingLogger struct {
	Entries []Entry
}

// Debug records a debug-level message
func (r *RecordingLogger) Debug(msg string, fields ...Field) { r.record("debug", msg, fields) }

// Info records an informational message
func (r *RecordingLogger) Info(msg string, fields ...Field) { r.record("info", msg, fields) }

// Warn records a warning message
func (r *RecordingLogger) Warn(msg string, fields ...Field) { r.record("warn", msg, fields) }

// Error records an error message
func (r *RecordingLogger) Error(msg string, fields ...Field) { r.record("error", msg, fields) }

// Messages returns the recorded messages at the given level
func (r *RecordingLogger) Messages(level string) []string {
	var msgs []string
	for _, e := range r.Entries {
		if e.Level == level {
			msgs = append(msgs, e.Msg)
		}
	}
	return msgs
}

func (r *RecordingLogger) record(level, msg string, fields []Field) {
	m := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	r.Entries = append(r.Entries, Entry{Level: level, Msg: msg, Fields: m})
}
