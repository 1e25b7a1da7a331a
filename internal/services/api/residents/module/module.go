// Package module wires residents into the API using modkit
package module

import (
	modkit "villagevisits/internal/modkit"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	authdom "villagevisits/internal/services/api/auth/domain"
	rhttp "villagevisits/internal/services/api/residents/http"
	rrepo "villagevisits/internal/services/api/residents/repo"
	rsvc "villagevisits/internal/services/api/residents/service"
	villdom "villagevisits/internal/services/api/villages/domain"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc rsvc.Service
}

// Needs is the port bundle residents expects through modkit.WithPorts
type Needs struct {
	Accounts authdom.AccountsPort
	Villages villdom.LookupPort
}

// New constructs a residents module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("residents"), modkit.WithPrefix("/residents")}, opts...)...)
	deps = deps.WithDefaults()
	needs, ok := b.Ports.(Needs)
	if !ok {
		panic("residents module requires modkit.WithPorts(Needs{...})")
	}

	svc := rsvc.New(repokit.NewGorm(deps.DB), rrepo.NewORM(), rsvc.Collaborators{
		Accounts: needs.Accounts,
		Villages: needs.Villages,
		Mail:     deps.Mail,
		Events:   deps.Events,
	})
	m := &Module{svc: svc}
	m.Base = modkit.NewBase(b, nil, func(r httpkit.Router) {
		rhttp.Register(r, m.svc, deps.AuthPort(), deps.Authz)
	})
	return m
}
