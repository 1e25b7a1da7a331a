package pg

import (
	"context"
	"strings"
	"time"

	"villagevisits/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// QueryEvent describes one executed statement
// Rows is -1 when the driver does not report affected rows
type QueryEvent struct {
	SQL     string
	Args    []any
	Rows    int64
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// NewEvent measures a statement that started at start
func NewEvent(sql string, args []any, rows int64, start time.Time, slow time.Duration, err error) QueryEvent {
	elapsed := time.Since(start)
	return QueryEvent{
		SQL:     sql,
		Args:    args,
		Rows:    rows,
		Elapsed: elapsed,
		Err:     err,
		Slow:    slow >= 0 && elapsed >= slow,
	}
}

// QueryTracer receives statement events from the pgx adapter and the ORM
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement on a child of root pinned to debug,
// so SQL logging does not depend on the process log level
func Tracer(root logger.Logger) QueryTracer {
	return logTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type logTracer struct{ log zerolog.Logger }

func (t logTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	e := t.log.WithLevel(levelOf(ev))
	if id := chimw.GetReqID(ctx); id != "" {
		e = e.Str("request_id", id)
	}
	if ev.Rows >= 0 {
		e = e.Int64("rows", ev.Rows)
	}
	e.Float64("elapsed_ms", float64(ev.Elapsed.Microseconds())/1000).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

func levelOf(ev QueryEvent) zerolog.Level {
	switch {
	case ev.Err != nil:
		return zerolog.ErrorLevel
	case ev.Slow:
		return zerolog.WarnLevel
	}
	return zerolog.InfoLevel
}

// compact folds a multi line statement onto one line
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
