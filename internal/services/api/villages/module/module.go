// Package module wires villages into the API using modkit
package module

import (
	modkit "villagevisits/internal/modkit"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	"villagevisits/internal/services/api/villages/domain"
	vhttp "villagevisits/internal/services/api/villages/http"
	vrepo "villagevisits/internal/services/api/villages/repo"
	vsvc "villagevisits/internal/services/api/villages/service"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc vsvc.Service
}

// Ports is the bundle other modules pull from villages
type Ports struct {
	Lookup domain.LookupPort
}

// New constructs a villages module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("villages"), modkit.WithPrefix("/villages")}, opts...)...)
	deps = deps.WithDefaults()

	svc := vsvc.New(repokit.NewGorm(deps.DB), vrepo.NewORM(), deps.Events)
	m := &Module{svc: svc}
	m.Base = modkit.NewBase(b, Ports{Lookup: svc}, func(r httpkit.Router) {
		vhttp.Register(r, m.svc, deps.AuthPort(), deps.Authz)
	})
	return m
}
