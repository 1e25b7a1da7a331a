package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"villagevisits/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type events []pg.QueryEvent

func (e *events) OnQuery(_ context.Context, ev pg.QueryEvent) { *e = append(*e, ev) }

type scanRow struct{ err error }

func (r scanRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int) = 1
	return nil
}

// fakeDB answers every statement with the canned results
type fakeDB struct {
	tag    pgconn.CommandTag
	err    error
	rowErr error
}

func (f fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return f.tag, f.err
}

func (f fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, f.err }

func (f fakeDB) QueryRow(context.Context, string, ...any) pgx.Row { return scanRow{err: f.rowErr} }

func traced(db dbtx) (querier, *events) {
	ev := &events{}
	return querier{db: db, p: &pg.PG{Tracer: ev, Slow: time.Hour}}, ev
}

func TestQuerier_Exec(t *testing.T) {
	q, ev := traced(fakeDB{tag: pgconn.NewCommandTag("UPDATE 3")})
	ct, err := q.Exec(context.Background(), `UPDATE visits SET origin = $1`, "Huye")
	require.NoError(t, err)
	assert.Equal(t, int64(3), ct.RowsAffected())
	require.Len(t, *ev, 1)
	assert.Equal(t, int64(3), (*ev)[0].Rows)
	assert.Equal(t, []any{"Huye"}, (*ev)[0].Args)
	assert.False(t, (*ev)[0].Slow)
}

func TestQuerier_QueryError(t *testing.T) {
	boom := errors.New("boom")
	q, ev := traced(fakeDB{err: boom})
	rows, err := q.Query(context.Background(), `SELECT 1`)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, rows)
	require.Len(t, *ev, 1)
	assert.ErrorIs(t, (*ev)[0].Err, boom)
	assert.Equal(t, int64(-1), (*ev)[0].Rows)
}

func TestQuerier_QueryRowTracesAfterScan(t *testing.T) {
	q, ev := traced(fakeDB{})
	row := q.QueryRow(context.Background(), `SELECT 1`)
	assert.Empty(t, *ev)

	var n int
	require.NoError(t, row.Scan(&n))
	assert.Equal(t, 1, n)
	require.Len(t, *ev, 1)

	q, ev = traced(fakeDB{rowErr: pgx.ErrNoRows})
	assert.ErrorIs(t, q.QueryRow(context.Background(), `SELECT 1`).Scan(&n), pgx.ErrNoRows)
	assert.ErrorIs(t, (*ev)[0].Err, pgx.ErrNoRows)
}

func TestQuerier_NoTracer(t *testing.T) {
	q := querier{db: fakeDB{}}
	var n int
	assert.NoError(t, q.QueryRow(context.Background(), `SELECT 1`).Scan(&n))
}

func TestAdapter_PingNotOpen(t *testing.T) {
	var a *adapter
	assert.Error(t, a.Ping(context.Background()))
}
