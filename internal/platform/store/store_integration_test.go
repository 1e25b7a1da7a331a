//go:build integration_pg

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("villagevisits"),
		postgres.WithUsername("app"),
		postgres.WithPassword("secret"),
		postgres.BasicWaitStrategies(),
	)
	tc.CleanupContainer(t, ctr)
	require.NoError(t, err)
	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := Open(ctx, Config{
		AppName: "store-test",
		PG:      PGConfig{Enabled: true, URL: dsn, MaxConns: 4, LogSQL: true, AutoMigrate: true},
	}, WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestStore_Integration(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Guard(ctx))

	var name string
	require.NoError(t, s.PG.QueryRow(ctx, `SELECT current_setting('application_name')`).Scan(&name))
	assert.Equal(t, "store-test", name)

	// migrations ran, the villages table is there and empty
	var n int64
	require.NoError(t, s.DB.WithContext(ctx).Table("villages").Count(&n).Error)
	assert.Zero(t, n)

	_, err := s.PG.Exec(ctx, `CREATE TABLE kv (k text PRIMARY KEY, v int)`)
	require.NoError(t, err)

	err = s.PG.Tx(ctx, func(q RowQuerier) error {
		_, err := q.Exec(ctx, `INSERT INTO kv VALUES ('a', 1), ('b', 2)`)
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.PG.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `INSERT INTO kv VALUES ('c', 3)`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	rows, err := s.PG.Query(ctx, `SELECT k FROM kv ORDER BY k`)
	keys, err := Collect(rows, err, func(r Row) (string, error) {
		var k string
		return k, r.Scan(&k)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	ct, err := s.PG.Exec(ctx, `UPDATE kv SET v = v + 1`)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ct.RowsAffected())
}
