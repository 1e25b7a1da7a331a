// Package module wires chiefs into the API using modkit
package module

import (
	modkit "villagevisits/internal/modkit"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	authdom "villagevisits/internal/services/api/auth/domain"
	chttp "villagevisits/internal/services/api/chiefs/http"
	crepo "villagevisits/internal/services/api/chiefs/repo"
	csvc "villagevisits/internal/services/api/chiefs/service"
	villdom "villagevisits/internal/services/api/villages/domain"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc csvc.Service
}

// Needs is the port bundle chiefs expects through modkit.WithPorts
type Needs struct {
	Accounts authdom.AccountsPort
	Villages villdom.LookupPort
}

// New constructs a chiefs module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("chiefs"), modkit.WithPrefix("/chiefs")}, opts...)...)
	deps = deps.WithDefaults()
	needs, ok := b.Ports.(Needs)
	if !ok {
		panic("chiefs module requires modkit.WithPorts(Needs{...})")
	}

	svc := csvc.New(repokit.NewGorm(deps.DB), crepo.NewORM(), csvc.Collaborators{
		Accounts: needs.Accounts,
		Villages: needs.Villages,
		Mail:     deps.Mail,
		Events:   deps.Events,
	})
	m := &Module{svc: svc}
	m.Base = modkit.NewBase(b, nil, func(r httpkit.Router) {
		chttp.Register(r, m.svc, deps.AuthPort(), deps.Authz)
	})
	return m
}
