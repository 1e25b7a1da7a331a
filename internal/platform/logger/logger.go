// Package logger owns the process zerolog root and the request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"villagevisits/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is zerolog's logger, aliased so callers import one package
type Logger = zerolog.Logger

// Options shape the root logger
type Options struct {
	Level  string
	Format string // console or json
	Writer io.Writer

	Service   string
	Component string
	Static    map[string]string

	Caller      bool
	SampleEvery int
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT, LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options {
	c := raw.New().Prefix("LOG_")
	return Options{
		Level:       c.Get("LEVEL", "debug"),
		Format:      strings.ToLower(c.Get("FORMAT", "console")),
		Service:     c.Get("SERVICE", ""),
		Component:   c.Get("COMPONENT", ""),
		Caller:      c.GetBool("CALLER", false),
		SampleEvery: c.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	mu   sync.Mutex
	root *Logger
)

// Init sets the root logger once, later calls are ignored
func Init(opt Options) {
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		l := New(opt)
		root = &l
	}
}

// Get returns the root logger, initialising it from the env on first use
func Get() *Logger {
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		l := New(FromEnv())
		root = &l
	}
	return root
}

// New builds a logger from opt without touching the root
func New(opt Options) Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	fields := map[string]any{}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fields["go_version"] = bi.GoVersion
	}
	for k, v := range map[string]string{"service": opt.Service, "component": opt.Component} {
		if v != "" {
			fields[k] = v
		}
	}
	for k, v := range opt.Static {
		fields[k] = v
	}

	ctx := zerolog.New(w).Level(Level(opt.Level)).With().Timestamp().Fields(fields)
	if opt.Caller {
		ctx = ctx.Caller()
	}
	l := ctx.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// Level parses a level name, unknown or empty names give debug
func Level(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

type ctxKey string

const (
	keyRequestID ctxKey = "request_id"
	keyUserID    ctxKey = "user_id"
	keyRole      ctxKey = "role"
)

// WithRequest stores the request id and user id for C, empty values are skipped
func WithRequest(ctx context.Context, reqID, userID string) context.Context {
	ctx = with(ctx, keyRequestID, reqID)
	return with(ctx, keyUserID, userID)
}

// WithRole stores the caller role for C
func WithRole(ctx context.Context, role string) context.Context {
	return with(ctx, keyRole, role)
}

func with(ctx context.Context, k ctxKey, v string) context.Context {
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, k, v)
}

// C is the root logger carrying whatever request fields ctx holds
func C(ctx context.Context) *Logger {
	b := Get().With()
	for _, k := range []ctxKey{keyRequestID, keyUserID, keyRole} {
		if v, ok := ctx.Value(k).(string); ok {
			b = b.Str(string(k), v)
		}
	}
	l := b.Logger()
	return &l
}

// Named is the root logger tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
