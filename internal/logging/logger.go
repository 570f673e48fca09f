package logging

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
)

type ctxKey struct{}

// Level orders log severities; messages below the global threshold are dropped.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var threshold atomic.Int32

func init() {
	threshold.Store(int32(LevelInfo))
}

// SetLevel sets the global threshold from a LOG_LEVEL style string.
// Unknown values fall back to info.
func SetLevel(s string) {
	threshold.Store(int32(ParseLevel(s)))
}

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// WithRequestID stores the request id on ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, rid)
}

// RequestID extracts the request id from ctx, or "" when none is set.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(ctxKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger provides leveled logging tagged with the request id.
type Logger struct {
	requestID string
}

// New creates a logger with request context
func New(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID}
}

func (l *Logger) Debugf(operation string, format string, args ...interface{}) {
	l.printf(LevelDebug, "debug", operation, format, args...)
}

func (l *Logger) Info(operation string, message string) {
	l.printf(LevelInfo, "info", operation, "message=%s", message)
}

func (l *Logger) Infof(operation string, format string, args ...interface{}) {
	l.printf(LevelInfo, "info", operation, format, args...)
}

func (l *Logger) Warn(operation string, message string) {
	l.printf(LevelWarn, "warn", operation, "message=%s", message)
}

func (l *Logger) Warnf(operation string, format string, args ...interface{}) {
	l.printf(LevelWarn, "warn", operation, format, args...)
}

func (l *Logger) Error(operation string, err error) {
	l.printf(LevelError, "error", operation, "error=%v", err)
}

func (l *Logger) Errorf(operation string, format string, args ...interface{}) {
	l.printf(LevelError, "error", operation, format, args...)
}

func (l *Logger) printf(lvl Level, tag, operation, format string, args ...interface{}) {
	if int32(lvl) < threshold.Load() {
		return
	}
	log.Printf("[%s] request_id=%s operation=%s "+format, append([]interface{}{tag, l.requestID, operation}, args...)...)
}
