// Package module wires the visitors listing into the API using modkit
package module

import (
	modkit "villagevisits/internal/modkit"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	vhttp "villagevisits/internal/services/api/visitors/http"
	vrepo "villagevisits/internal/services/api/visitors/repo"
	vsvc "villagevisits/internal/services/api/visitors/service"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc vsvc.Service
}

// New constructs a visitors module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("visitors"), modkit.WithPrefix("/visitors")}, opts...)...)
	deps = deps.WithDefaults()

	m := &Module{svc: vsvc.New(repokit.NewGorm(deps.DB), vrepo.NewORM())}
	m.Base = modkit.NewBase(b, nil, func(r httpkit.Router) {
		vhttp.Register(r, m.svc, deps.AuthPort(), deps.Authz)
	})
	return m
}
