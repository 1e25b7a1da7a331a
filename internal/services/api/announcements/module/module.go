// Package module wires announcements into the API using modkit
package module

import (
	modkit "villagevisits/internal/modkit"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	ahttp "villagevisits/internal/services/api/announcements/http"
	arepo "villagevisits/internal/services/api/announcements/repo"
	asvc "villagevisits/internal/services/api/announcements/service"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc asvc.Service
}

// New constructs an announcements module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("announcements"), modkit.WithPrefix("/announcements")}, opts...)...)
	deps = deps.WithDefaults()

	m := &Module{svc: asvc.New(repokit.NewGorm(deps.DB), arepo.NewORM(), deps.Events)}
	m.Base = modkit.NewBase(b, nil, func(r httpkit.Router) {
		ahttp.Register(r, m.svc, deps.AuthPort(), deps.Authz)
	})
	return m
}
