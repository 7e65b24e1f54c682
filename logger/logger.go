package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZeroLogger wraps zerolog.Logger to implement the Logger interface.
type ZeroLogger struct {
	zlog     *zerolog.Logger
	redactor *Redactor
}

var _ Logger = (*ZeroLogger)(nil)

// New creates a ZeroLogger writing to stdout at the given level. If pretty
// is true, output is formatted for human readability. Unknown levels fall
// back to info.
func New(level string, pretty bool) *ZeroLogger {
	return NewWithWriter(level, pretty, os.Stdout)
}

// NewWithWriter creates a ZeroLogger writing to the given writer.
func NewWithWriter(level string, pretty bool, w io.Writer) *ZeroLogger {
	if pretty {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}
	l := zerolog.New(w).With().Timestamp().Logger()

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		zLevel = zerolog.InfoLevel
	}
	l = l.Level(zLevel)

	return &ZeroLogger{zlog: &l, redactor: NewRedactor(nil)}
}

// WithRedactor returns a logger using a custom redactor.
func (l *ZeroLogger) WithRedactor(r *Redactor) *ZeroLogger {
	return &ZeroLogger{zlog: l.zlog, redactor: r}
}

// WithFields returns a logger with additional fields attached to all log
// entries. Sensitive fields are masked before they are attached.
func (l *ZeroLogger) WithFields(fields map[string]any) Logger {
	if l.redactor != nil {
		fields = l.redactor.Fields(fields)
	}
	log := l.zlog.With().Fields(fields).Logger()
	return &ZeroLogger{zlog: &log, redactor: l.redactor}
}

// Debug creates a debug-level log event
func (l *ZeroLogger) Debug() LogEvent {
	return &eventAdapter{event: l.zlog.Debug(), redactor: l.redactor}
}

// Info creates an info-level log event
func (l *ZeroLogger) Info() LogEvent {
	return &eventAdapter{event: l.zlog.Info(), redactor: l.redactor}
}

// Warn creates a warning-level log event
func (l *ZeroLogger) Warn() LogEvent {
	return &eventAdapter{event: l.zlog.Warn(), redactor: l.redactor}
}

// Error creates an error-level log event
func (l *ZeroLogger) Error() LogEvent {
	return &eventAdapter{event: l.zlog.Error(), redactor: l.redactor}
}
