// Package logging is the process-wide logging sink used by the
// transferlist engine and its boundary collaborators. It mirrors the
// original C library's logger_interface: a small, swappable table of
// info/warn/error callbacks rather than a handle threaded through every
// call, because the engine itself never allocates or owns a logger.
package logging

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Sink writes one structured log line.
type Sink func(msg string, fields ...Field)

// Sinks is the dispatch table consulted by Info, Warn and Error.
type Sinks struct {
	Info  Sink
	Warn  Sink
	Error Sink
}

var (
	mu      sync.RWMutex
	current = defaultSinks()
)

func defaultSinks() Sinks {
	return Sinks{
		Info:  defaultSink("INFO"),
		Warn:  defaultSink("WARN"),
		Error: defaultSink("ERROR"),
	}
}

func defaultSink(level string) Sink {
	return func(msg string, fields ...Field) {
		var b []byte
		b = append(b, '[')
		b = append(b, level...)
		b = append(b, "] "...)
		b = append(b, msg...)
		for _, f := range fields {
			b = append(b, ' ')
			b = append(b, f.Key...)
			b = append(b, '=')
			b = append(b, f.format()...)
		}
		b = append(b, '\n')
		fmt.Fprint(os.Stdout, string(b))
	}
}

// Register installs sinks for Info/Warn/Error. Any nil field is filled in
// with this package's default sink, so a zero-value Sinks{}, a partial
// registration, or Reset all leave every level callable — matching the
// original library's libtl_register_logger, which always populates its
// own default backing struct regardless of what the caller passed in.
func Register(s Sinks) {
	d := defaultSinks()
	if s.Info == nil {
		s.Info = d.Info
	}
	if s.Warn == nil {
		s.Warn = d.Warn
	}
	if s.Error == nil {
		s.Error = d.Error
	}

	mu.Lock()
	current = s
	mu.Unlock()
}

// Reset restores the default stdout sinks.
func Reset() {
	Register(Sinks{})
}

func dispatch(pick func(Sinks) Sink, msg string, fields []Field) {
	mu.RLock()
	sink := pick(current)
	mu.RUnlock()
	sink(msg, fields...)
}

// Info logs an informational message.
func Info(msg string, fields ...Field) {
	dispatch(func(s Sinks) Sink { return s.Info }, msg, fields)
}

// Warn logs a warning.
func Warn(msg string, fields ...Field) {
	dispatch(func(s Sinks) Sink { return s.Warn }, msg, fields)
}

// Error logs an error.
func Error(msg string, fields ...Field) {
	dispatch(func(s Sinks) Sink { return s.Error }, msg, fields)
}

// Field is a key-value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

func (f Field) format() string {
	switch v := f.Value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case error:
		return fmt.Sprintf("%q", v.Error())
	case time.Duration:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// String creates a string-valued field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int-valued field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint32 creates a uint32-valued field.
func Uint32(key string, value uint32) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64-valued field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Bool creates a bool-valued field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Err creates an error-valued field under the key "error".
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Any creates a field from an arbitrary value.
func Any(key string, value any) Field { return Field{Key: key, Value: value} }
