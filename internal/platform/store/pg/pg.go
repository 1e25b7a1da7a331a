// Package pg opens the shared pgx pool and traces statements
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
	// AppName is reported as application_name in pg_stat_activity
	AppName string
	// Slow marks statements at or over it, zero flags everything, negative nothing
	Slow time.Duration
	// Tracer receives one event per statement, nil disables tracing
	Tracer QueryTracer
	// Tune runs last on the parsed pool config
	Tune func(*pgxpool.Config)
}

// PG owns the pool together with its tracing settings
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	Slow   time.Duration
}

var connect = pgxpool.NewWithConfig

// PoolConfig parses cfg.URL and applies the pool knobs
func PoolConfig(cfg Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.Tune != nil {
		cfg.Tune(pc)
	}
	return pc, nil
}

// Open builds the pool, it does not wait for the server
func Open(ctx context.Context, cfg Config) (*PG, error) {
	pc, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := connect(ctx, pc)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool, Tracer: cfg.Tracer, Slow: cfg.Slow}, nil
}

// Trace reports one finished statement to the tracer, if any
func (p *PG) Trace(ctx context.Context, sql string, args []any, rows int64, start time.Time, err error) {
	if p == nil || p.Tracer == nil {
		return
	}
	p.Tracer.OnQuery(ctx, NewEvent(sql, args, rows, start, p.Slow, err))
}

// Close closes the pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
