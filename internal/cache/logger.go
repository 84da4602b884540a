package cache

import "github.com/rs/zerolog"

// Logger receives error reports from cache backends that cannot return errors
// through the Cache interface.
type Logger interface {
	Error(msg string, err error)
}

// zerologLogger adapts a zerolog.Logger to the cache Logger interface.
type zerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger wraps logger so cache backends can report failures through it.
func NewZerologLogger(logger zerolog.Logger) Logger {
	return &zerologLogger{logger: logger.With().Str("component", "cache").Logger()}
}

func (l *zerologLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}
