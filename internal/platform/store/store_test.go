package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_NothingEnabled(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Config{}, WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	assert.Nil(t, s.PG)
	assert.Nil(t, s.DB)
	assert.Nil(t, s.Redis)
	assert.NoError(t, s.Guard(ctx))
	assert.NoError(t, s.Close(ctx))
}

func TestOpen_Errors(t *testing.T) {
	cases := map[string]Config{
		"bad pg url":       {PG: PGConfig{Enabled: true, URL: "://bad"}},
		"bad redis url":    {RDS: RedisConfig{Enabled: true, URL: "not-a-redis-url"}},
		"redis closed":     {RDS: RedisConfig{Enabled: true, URL: "redis://127.0.0.1:1/0"}},
		"pg fails first":   {PG: PGConfig{Enabled: true, URL: "://bad"}, RDS: RedisConfig{Enabled: true, URL: "redis://127.0.0.1:6379/0"}},
		"pg never answers": {PG: PGConfig{Enabled: true, URL: "postgres://x:y@127.0.0.1:1/db", ConnectRetries: 1, PingTimeout: 50 * time.Millisecond}},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := Open(context.Background(), cfg)
			assert.Error(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestOpen_OptionError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Open(context.Background(), Config{}, func(*Store) error { return boom })
	assert.ErrorIs(t, err, boom)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type pingRunner struct {
	TxRunner
	pinger
}

func TestGuard(t *testing.T) {
	var nilStore *Store
	assert.EqualError(t, nilStore.Guard(context.Background()), "nil store")

	s := &Store{PG: pingRunner{pinger: pinger{err: errors.New("down")}}}
	assert.EqualError(t, s.Guard(context.Background()), "pg: down")

	s.PG = pingRunner{}
	assert.NoError(t, s.Guard(context.Background()))
}

func TestWaitFor(t *testing.T) {
	calls := 0
	err := waitFor(context.Background(), func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("not yet")
		}
		return nil
	}, 3, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	err = waitFor(context.Background(), func(context.Context) error { return errors.New("down") }, 2, time.Second)
	assert.EqualError(t, err, "ping failed after 2 attempts: down")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = waitFor(ctx, func(context.Context) error { return errors.New("down") }, 5, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
