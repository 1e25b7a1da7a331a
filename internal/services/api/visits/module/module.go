// Package module wires visits into the API using modkit
package module

import (
	"context"
	"fmt"
	"time"

	modkit "villagevisits/internal/modkit"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	vhttp "villagevisits/internal/services/api/visits/http"
	vrepo "villagevisits/internal/services/api/visits/repo"
	vsvc "villagevisits/internal/services/api/visits/service"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc vsvc.Service
}

// StatementTimeout bounds every stats transaction
func StatementTimeout(d time.Duration) repokit.BeginHook {
	return func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", d.Milliseconds()))
		return err
	}
}

// New constructs a visits module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("visits"), modkit.WithPrefix("/visits")}, opts...)...)
	deps = deps.WithDefaults()

	var pg repokit.TxRunner
	if deps.PG != nil {
		timeout := deps.Cfg.Prefix("CORE_API_").MayDuration("STATS_TIMEOUT", 5*time.Second)
		pg = repokit.WithBeginHooks(deps.PG, StatementTimeout(timeout))
	}

	svc := vsvc.New(repokit.NewGorm(deps.DB), vrepo.NewORM(), vsvc.Options{
		PG:     pg,
		Stats:  vrepo.NewPG(),
		Blobs:  deps.Blobs,
		Events: deps.Events,
		Obs:    deps.Metrics,
	})
	m := &Module{svc: svc}
	m.Base = modkit.NewBase(b, nil, func(r httpkit.Router) {
		vhttp.Register(r, m.svc, deps.AuthPort(), deps.Authz)
	})
	return m
}
