package store

import (
	"time"

	"villagevisits/internal/platform/logger"
)

// Config selects and tunes the backends Open brings up
type Config struct {
	AppName string

	PG  PGConfig
	RDS RedisConfig
}

// PGConfig configures postgres
type PGConfig struct {
	Enabled bool
	URL     string
	// MaxConns zero keeps the pgx default
	MaxConns int32
	// LogSQL traces every statement through the store logger
	LogSQL bool
	// SlowQuery flags traced statements at or over it as slow
	SlowQuery   time.Duration
	AutoMigrate bool

	// ConnectRetries bounds the boot ping loop, default 20
	ConnectRetries int
	// PingTimeout bounds one boot ping, default 3s
	PingTimeout time.Duration
}

// RedisConfig configures redis, URL is redis:// or rediss://
type RedisConfig struct {
	Enabled bool
	URL     string
}

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
