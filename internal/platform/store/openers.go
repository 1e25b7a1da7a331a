package store

import (
	"context"
	"fmt"
	"time"

	"villagevisits/internal/platform/store/orm"
	"villagevisits/internal/platform/store/pg"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRetries     = 20
	defaultPingTimeout = 3 * time.Second
	backoffStart       = 150 * time.Millisecond
	backoffMax         = 2 * time.Second
)

// openPG opens the pool, waits for the server then layers GORM on top
func (s *Store) openPG(ctx context.Context, cfg Config) error {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		AppName:  cfg.AppName,
		Slow:     cfg.PG.SlowQuery,
		Tracer:   tracer,
	})
	if err != nil {
		return fmt.Errorf("pg: %w", err)
	}
	if err := waitFor(ctx, p.Pool.Ping, cfg.PG.ConnectRetries, cfg.PG.PingTimeout); err != nil {
		p.Close()
		return fmt.Errorf("pg: %w", err)
	}

	db, sqlDB, err := orm.Open(p.Pool, orm.Config{Tracer: tracer, Slow: cfg.PG.SlowQuery})
	if err != nil {
		p.Close()
		return fmt.Errorf("orm: %w", err)
	}
	s.PG, s.DB, s.SQL = newAdapter(p), db, sqlDB
	return nil
}

// waitFor pings until the first success with capped exponential backoff
func waitFor(ctx context.Context, ping func(context.Context) error, attempts int, timeout time.Duration) error {
	if attempts <= 0 {
		attempts = defaultRetries
	}
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	var err error
	wait := backoffStart
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = ping(pctx)
		cancel()
		if err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, backoffMax)
	}
	return fmt.Errorf("ping failed after %d attempts: %w", attempts, err)
}

// openRedis parses the URL and pings once
func openRedis(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	opt, err := redis.ParseURL(cfg.RDS.URL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	if cfg.AppName != "" {
		opt.ClientName = cfg.AppName
	}
	c := redis.NewClient(opt)
	if err := waitFor(ctx, func(ctx context.Context) error { return c.Ping(ctx).Err() }, 1, defaultPingTimeout); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	return c, nil
}
