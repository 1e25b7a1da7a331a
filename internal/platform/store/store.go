// Package store opens the postgres and redis backends the api runs on
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"villagevisits/internal/platform/logger"
	"villagevisits/internal/platform/store/migrations"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Store holds whichever backends were enabled, the rest stay nil
type Store struct {
	// Log is handed to the pg tracer, the zero value discards
	Log logger.Logger

	// PG is pgx behind the RowQuerier seam, used for hand written SQL
	PG TxRunner
	// DB is GORM over the same pool
	DB *gorm.DB
	// SQL is database/sql over the same pool, for migrations
	SQL *sql.DB

	Redis redis.UniversalClient
}

// Row is one scanned result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set, callers must Close it
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a write touched
type CommandTag interface {
	RowsAffected() int64
}

// RowQuerier is the SQL surface repos are bound to
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also open a transaction,
// fn returning an error rolls it back
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Open brings up the backends enabled in cfg
// on error everything opened so far is closed again
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		if err := s.openPG(ctx, cfg); err != nil {
			return nil, err
		}
		if cfg.PG.AutoMigrate {
			if err := migrations.Up(s.SQL); err != nil {
				_ = s.Close(ctx)
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
	}

	if cfg.RDS.Enabled {
		rc, err := openRedis(ctx, cfg)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.Redis = rc
	}
	return s, nil
}

// Guard pings every open backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pg: %w", err))
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close releases redis and the pgx pool, SQL and DB go with the pool
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	if c, ok := s.PG.(interface{ Close() }); ok {
		c.Close()
	}
	return errors.Join(errs...)
}
