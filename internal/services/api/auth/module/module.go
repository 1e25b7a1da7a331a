// Package module wires auth into the API using modkit
package module

import (
	"net/http"

	modkit "villagevisits/internal/modkit"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	"villagevisits/internal/platform/net/middleware"
	authhttp "villagevisits/internal/services/api/auth/http"
	authrepo "villagevisits/internal/services/api/auth/repo"
	authsvc "villagevisits/internal/services/api/auth/service"
)

// Module implements the modkit.Module interface
// it owns two roots, /admin and /users, so it mounts them itself
type Module struct {
	modkit.Base
	svc authsvc.Service
}

// Options tunes the login throttle
type Options struct {
	LoginRate  int
	LoginBurst int
}

// FromConfig reads CORE_API_LOGIN_* values
func FromConfig(deps modkit.Deps) Options {
	c := deps.Cfg.Prefix("CORE_API_")
	return Options{
		LoginRate:  c.MayInt("LOGIN_RATE", 10),
		LoginBurst: c.MayInt("LOGIN_BURST", 5),
	}
}

// New constructs the auth module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("auth"), modkit.WithPrefix("/users")}, opts...)...)
	deps = deps.WithDefaults()
	if deps.Tokens == nil {
		panic("auth module requires Tokens")
	}
	o := FromConfig(deps)

	svc := authsvc.New(repokit.NewGorm(deps.DB), authrepo.NewORM(), deps.Tokens, deps.Hasher, deps.Metrics)

	var limit func(http.Handler) http.Handler
	if o.LoginRate > 0 {
		limit = middleware.RateLimit(middleware.RateLimitOptions{
			PerMinute: o.LoginRate,
			Burst:     o.LoginBurst,
			OnLimited: func(*http.Request) { deps.Metrics.IncRateLimited() },
		})
	}

	m := &Module{svc: svc}
	m.Base = modkit.NewBase(b, Ports{Accounts: svc}, func(r httpkit.Router) {
		authhttp.Register(r, m.svc, authhttp.Options{
			Auth:       deps.AuthPort(),
			Authz:      deps.Authz,
			LoginLimit: limit,
		})
	})
	return m
}

// MountRoutes registers /admin and /users directly on the API router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Group(func(g httpkit.Router) {
		for _, mw := range m.Middlewares() {
			g.Use(mw)
		}
		m.Register(g)
	})
}
