package store

import (
	"context"
	"errors"
	"time"

	"villagevisits/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// dbtx is what the pool and a pgx.Tx have in common
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier runs statements on db and traces them through p
type querier struct {
	db dbtx
	p  *pg.PG
}

func (q querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := q.db.Exec(ctx, sql, args...)
	q.p.Trace(ctx, sql, args, ct.RowsAffected(), start, err)
	return ct, err
}

// Query traces on open, row iteration is not timed
func (q querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.db.Query(ctx, sql, args...)
	q.p.Trace(ctx, sql, args, -1, start, err)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// QueryRow traces once Scan returns so the scan error is reported too
func (q querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return tracedRow{Row: q.db.QueryRow(ctx, sql, args...), done: func(err error) {
		q.p.Trace(ctx, sql, args, -1, start, err)
	}}
}

type tracedRow struct {
	pgx.Row
	done func(error)
}

func (r tracedRow) Scan(dest ...any) error {
	err := r.Row.Scan(dest...)
	r.done(err)
	return err
}

// adapter is the pool level querier, it owns the pool
type adapter struct {
	querier
	pool interface {
		dbtx
		Begin(ctx context.Context) (pgx.Tx, error)
		Ping(ctx context.Context) error
	}
}

func newAdapter(p *pg.PG) *adapter {
	return &adapter{querier: querier{db: p.Pool, p: p}, pool: p.Pool}
}

// Tx commits when fn returns nil, statements inside are traced like the pool's
func (a *adapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, a.pool, func(tx pgx.Tx) error {
		return fn(querier{db: tx, p: a.p})
	})
}

func (a *adapter) Ping(ctx context.Context) error {
	if a == nil || a.pool == nil {
		return errors.New("pg: not open")
	}
	return a.pool.Ping(ctx)
}

func (a *adapter) Close() { a.p.Close() }
