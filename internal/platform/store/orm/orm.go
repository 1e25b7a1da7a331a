// Package orm opens GORM on top of the shared pgx pool
package orm

import (
	"database/sql"
	"errors"
	"time"

	"villagevisits/internal/platform/store/pg"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Config tunes the GORM session
type Config struct {
	// Tracer receives one event per statement, nil disables statement logging
	Tracer pg.QueryTracer
	// Slow flags statements at or over it
	Slow time.Duration
	// DryRun builds SQL without executing it
	DryRun bool
}

// Open wraps pool in database/sql and opens GORM on it
// the returned *sql.DB shares the pool, closing the pool closes both
func Open(pool *pgxpool.Pool, cfg Config) (*gorm.DB, *sql.DB, error) {
	if pool == nil {
		return nil, nil, errors.New("orm: nil pool")
	}
	sqlDB := stdlib.OpenDBFromPool(pool)
	db, err := OpenSQL(sqlDB, cfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return db, sqlDB, nil
}

// OpenSQL opens GORM over an existing *sql.DB
func OpenSQL(sqlDB *sql.DB, cfg Config) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig(cfg))
}

func gormConfig(cfg Config) *gorm.Config {
	return &gorm.Config{
		Logger:                 NewLogger(cfg.Tracer, cfg.Slow),
		NamingStrategy:         schema.NamingStrategy{SingularTable: false},
		TranslateError:         true,
		SkipDefaultTransaction: true,
		DryRun:                 cfg.DryRun,
		DisableAutomaticPing:   cfg.DryRun,
	}
}
