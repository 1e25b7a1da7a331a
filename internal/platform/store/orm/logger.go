package orm

import (
	"context"
	"errors"
	"time"

	"villagevisits/internal/platform/logger"
	"villagevisits/internal/platform/store/pg"

	"gorm.io/gorm"
	glog "gorm.io/gorm/logger"
)

// Logger sends GORM statements to the pg tracer so both SQL paths log alike,
// GORM's own messages go to the context logger
type Logger struct {
	tracer pg.QueryTracer
	slow   time.Duration
	level  glog.LogLevel
}

// NewLogger builds a Logger, a negative slow never flags
func NewLogger(tracer pg.QueryTracer, slow time.Duration) *Logger {
	return &Logger{tracer: tracer, slow: slow, level: glog.Warn}
}

func (l *Logger) LogMode(level glog.LogLevel) glog.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.say(ctx, glog.Info, msg, args)
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.say(ctx, glog.Warn, msg, args)
}

func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.say(ctx, glog.Error, msg, args)
}

func (l *Logger) say(ctx context.Context, at glog.LogLevel, msg string, args []any) {
	if l.level < at {
		return
	}
	log := logger.C(ctx)
	ev := log.Info()
	switch at {
	case glog.Warn:
		ev = log.Warn()
	case glog.Error:
		ev = log.Error()
	}
	ev.Str("component", "orm").Msgf(msg, args...)
}

// Trace drops ErrRecordNotFound, a miss is a normal answer
func (l *Logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.tracer == nil || l.level == glog.Silent {
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	sql, rows := fc()
	l.tracer.OnQuery(ctx, pg.NewEvent(sql, nil, rows, begin, l.slow, err))
}
