package config

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry configures error reporting when a DSN is present.
// The returned function flushes buffered events and must be called before exit.
func InitSentry(cfg *Config) (func(), error) {
	if cfg == nil || cfg.Sentry.DSN == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
	})
	if err != nil {
		return func() {}, err
	}

	logger.Info().Str("environment", cfg.Sentry.Environment).Msg("Sentry error reporting enabled")
	return func() { sentry.Flush(2 * time.Second) }, nil
}
