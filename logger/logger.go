package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger writes one JSON object per line, tagged with the service name and
// host so lines from several instances can be told apart.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func NewLogger(service string) *Logger {
	return New(service, os.Stdout, slog.LevelDebug)
}

func New(service string, w io.Writer, level slog.Level) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

func (l *Logger) log(level slog.Level, action, requestID, message string, attrs ...slog.Attr) {
	base := []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}
	l.handler.LogAttrs(context.Background(), level, message, append(base, attrs...)...)
}

func (l *Logger) Info(action, requestID, message string, attrs ...slog.Attr) {
	l.log(slog.LevelInfo, action, requestID, message, attrs...)
}

func (l *Logger) Debug(action, requestID, message string, attrs ...slog.Attr) {
	l.log(slog.LevelDebug, action, requestID, message, attrs...)
}

func (l *Logger) Warn(action, requestID, message string, attrs ...slog.Attr) {
	l.log(slog.LevelWarn, action, requestID, message, attrs...)
}

func (l *Logger) Error(action, requestID, message string, err error, attrs ...slog.Attr) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	l.log(slog.LevelError, action, requestID, message, append(attrs, slog.String("error", msg))...)
}
