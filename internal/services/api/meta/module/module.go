// Package module wires meta endpoints into the API
package module

import (
	"context"
	"time"

	modkit "villagevisits/internal/modkit"
	"villagevisits/internal/modkit/httpkit"
	metahttp "villagevisits/internal/services/api/meta/http"
)

// ServiceName is reported by health, version and service
const ServiceName = "villagevisits-api"

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)

	m := &Module{startedAt: time.Now()}
	checks := Checks(deps)
	m.Base = modkit.NewBase(b, nil, func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			Checks:      checks,
		})
	})
	return m
}

// Checks lists the readiness checks for the configured stores
func Checks(deps modkit.Deps) []metahttp.Check {
	pg := metahttp.Check{Name: "pg"}
	if p, ok := deps.PG.(metahttp.Pinger); ok {
		pg.Pinger = p
	}
	rd := metahttp.Check{Name: "redis"}
	if deps.Redis != nil {
		rd.Pinger = metahttp.PingFunc(func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		})
	}
	return []metahttp.Check{pg, rd}
}
