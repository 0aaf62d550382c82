package logger

import (
	"fmt"
	"strings"
	"sync"
)

// BasicLogger prints log lines using fmt.Printf.
type BasicLogger struct {
	mu     *sync.Mutex
	fields []Field
}

var _ Logger = (*BasicLogger)(nil)

// New returns a basic logger that writes to stdout using fmt.Printf.
func New() *BasicLogger {
	return &BasicLogger{
		mu: &sync.Mutex{},
	}
}

// Default returns the default basic logger implementation.
func Default() Logger {
	return New()
}

// With returns a logger that includes the given fields on each log line.
func (l *BasicLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	next := &BasicLogger{
		mu:     l.mu,
		fields: append(append([]Field(nil), l.fields...), fields...),
	}
	return next
}

func (l *BasicLogger) Debug(msg string, fields ...Field) { l.log("DEBUG", msg, fields...) }
func (l *BasicLogger) Info(msg string, fields ...Field)  { l.log("INFO", msg, fields...) }
func (l *BasicLogger) Warn(msg string, fields ...Field)  { l.log("WARN", msg, fields...) }
func (l *BasicLogger) Error(msg string, fields ...Field) { l.log("ERROR", msg, fields...) }

func (l *BasicLogger) log(level, msg string, fields ...Field) {
	line := fmt.Sprintf("[%s] %s", level, msg)
	if rendered := formatFields(append(l.fields, fields...)); rendered != "" {
		line += " " + rendered
	}
	l.mu.Lock()
	fmt.Printf("%s\n", line)
	l.mu.Unlock()
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s=%s", field.Key, fmt.Sprint(field.Value)))
	}
	return strings.Join(parts, " ")
}
