package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// timeLayout is the timestamp format of every log record
const timeLayout = "2006-01-02 15:04:05"

// Logger writes timestamped, leveled records to a sink with redaction support
type Logger struct {
	out   io.Writer
	debug bool
	now   func() time.Time
	mu    sync.Mutex
}

// New creates a new logger writing to out. A nil writer discards records.
func New(out io.Writer, debug bool) *Logger {
	if out == nil {
		out = io.Discard
	}
	return &Logger{
		out:   out,
		debug: debug,
		now:   time.Now,
	}
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.write("INFO", format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.write("WARNING", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.write("ERROR", format, args...)
}

// Debug logs a debug message if debug mode is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	if l == nil || !l.debug {
		return
	}
	l.write("DEBUG", format, args...)
}

func (l *Logger) write(level, format string, args ...interface{}) {
	if l == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.out, "%s - %s - %s\n", l.now().Format(timeLayout), level, msg)
}

// Redact replaces sensitive values in a string with [REDACTED]
func Redact(s string, secrets []string) string {
	result := s
	for _, secret := range secrets {
		if secret != "" && len(secret) > 3 { // Only redact non-trivial secrets
			result = strings.ReplaceAll(result, secret, "[REDACTED]")
		}
	}
	return result
}
