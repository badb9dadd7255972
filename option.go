package granary

import (
	"strings"

	"github.com/rs/zerolog"
)

// Option configures a World during New. Options apply on top of the
// environment config, before the logger is built and the store accepts
// entities.
type Option func(w *World)

// WithWorldID overrides the configured world identifier.
func WithWorldID(id string) Option {
	return func(w *World) {
		w.config.WorldID = id
	}
}

// WithLogger replaces the world logger wholesale. The configured level,
// pretty flag and world_id context are discarded in favor of the given
// logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *World) {
		w.customLogger = &logger
	}
}

// WithPrettyLog renders world logs through a console writer on stderr.
func WithPrettyLog() Option {
	return func(w *World) {
		w.config.LogPretty = true
	}
}

// WithStatsd enables metric emission to the DogStatsD agent at address.
func WithStatsd(address string, tags ...string) Option {
	return func(w *World) {
		w.config.StatsdAddress = address
		w.config.StatsdTags = strings.Join(tags, ",")
	}
}
