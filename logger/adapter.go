package logger

import (
	"time"

	"github.com/rs/zerolog"
)

// eventAdapter adapts zerolog events to the LogEvent interface.
type eventAdapter struct {
	event    *zerolog.Event
	redactor *Redactor
}

func (a *eventAdapter) Msg(msg string) {
	a.event.Msg(msg)
}

func (a *eventAdapter) Msgf(format string, args ...any) {
	a.event.Msgf(format, args...)
}

func (a *eventAdapter) Err(err error) LogEvent {
	return &eventAdapter{event: a.event.Err(err), redactor: a.redactor}
}

func (a *eventAdapter) Str(key, value string) LogEvent {
	if a.redactor != nil {
		value = a.redactor.String(key, value)
	}
	return &eventAdapter{event: a.event.Str(key, value), redactor: a.redactor}
}

func (a *eventAdapter) Int(key string, value int) LogEvent {
	return &eventAdapter{event: a.event.Int(key, value), redactor: a.redactor}
}

func (a *eventAdapter) Dur(key string, d time.Duration) LogEvent {
	return &eventAdapter{event: a.event.Dur(key, d), redactor: a.redactor}
}

func (a *eventAdapter) Interface(key string, i any) LogEvent {
	if a.redactor != nil {
		i = a.redactor.Value(key, i)
	}
	return &eventAdapter{event: a.event.Interface(key, i), redactor: a.redactor}
}

func (a *eventAdapter) Bytes(key string, val []byte) LogEvent {
	return &eventAdapter{event: a.event.Bytes(key, val), redactor: a.redactor}
}
