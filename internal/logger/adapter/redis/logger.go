// Package redis routes go-redis client logging through zerolog.
package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger implements the go-redis logging interface.
type Logger struct {
	level zerolog.Level
}

// New creates a logger writing go-redis messages at warn level.
func New() *Logger {
	return &Logger{level: zerolog.WarnLevel}
}

// Printf implements the go-redis logging interface.
func (l *Logger) Printf(_ context.Context, format string, v ...any) {
	log.WithLevel(l.level).Str("component", "redis").Msgf(format, v...)
}

// Install makes l the process wide go-redis logger.
func Install(l *Logger) {
	goredis.SetLogger(l)
}
