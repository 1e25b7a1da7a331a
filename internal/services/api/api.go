// Package api provides the HTTP API for the application
package api

import (
	"net/http"
	"time"

	"villagevisits/internal/core/pagination"
	"villagevisits/internal/platform/auth"
	"villagevisits/internal/platform/blob"
	"villagevisits/internal/platform/config"
	"villagevisits/internal/platform/events"
	"villagevisits/internal/platform/logger"
	"villagevisits/internal/platform/mail"
	"villagevisits/internal/platform/metrics"
	phttp "villagevisits/internal/platform/net/http"
	"villagevisits/internal/platform/net/middleware"
	"villagevisits/internal/platform/store"

	"villagevisits/internal/modkit"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/module"
	"villagevisits/internal/modkit/swaggerkit"

	announcementsmod "villagevisits/internal/services/api/announcements/module"
	authmod "villagevisits/internal/services/api/auth/module"
	chiefsmod "villagevisits/internal/services/api/chiefs/module"
	metamod "villagevisits/internal/services/api/meta/module"
	residentsmod "villagevisits/internal/services/api/residents/module"
	villagesmod "villagevisits/internal/services/api/villages/module"
	visitorsmod "villagevisits/internal/services/api/visitors/module"
	visitsmod "villagevisits/internal/services/api/visits/module"

	"github.com/go-chi/chi/v5"
)

// DefaultBodyLimit caps request bodies when CORE_API_BODY_LIMIT is unset
const DefaultBodyLimit = 5 << 20

// Options are the API options
type Options struct {
	// Config is the root view, modules pick their own prefixes
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	Tokens  *auth.Tokens
	Hasher  auth.Hasher
	Mail    mail.Queue
	Blobs   blob.Store
	Events  events.Publisher
	Metrics *metrics.Metrics

	EnableSwagger  bool
	EnableProfiler bool
}

// Deps turns the options into the shared module deps
func (o Options) Deps() (modkit.Deps, error) {
	policy, err := auth.NewPolicy()
	if err != nil {
		return modkit.Deps{}, err
	}
	deps := modkit.Deps{
		Cfg:     o.Config,
		Tokens:  o.Tokens,
		Hasher:  o.Hasher,
		Authz:   policy,
		Mail:    o.Mail,
		Blobs:   o.Blobs,
		Events:  o.Events,
		Metrics: o.Metrics,
	}
	if o.Logger != nil {
		deps.Log = *o.Logger
	}
	if o.Store != nil {
		deps.PG = o.Store.PG
		deps.DB = o.Store.DB
		deps.Redis = o.Store.Redis
	}
	return deps.WithDefaults(), nil
}

// Modules builds every API module in dependency order
// auth and villages come first since chiefs and residents consume their ports
func Modules(deps modkit.Deps) []module.Module {
	authM := authmod.New(deps)
	villagesM := villagesmod.New(deps)

	accounts := module.MustPortsOf[authmod.Ports](authM).Accounts
	villages := module.MustPortsOf[villagesmod.Ports](villagesM).Lookup

	return []module.Module{
		metamod.New(deps),
		authM,
		villagesM,
		chiefsmod.New(deps, modkit.WithPorts(chiefsmod.Needs{
			Accounts: accounts,
			Villages: villages,
		})),
		residentsmod.New(deps, modkit.WithPorts(residentsmod.Needs{
			Accounts: accounts,
			Villages: villages,
		})),
		visitsmod.New(deps),
		visitorsmod.New(deps),
		announcementsmod.New(deps),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) error {
	deps, err := opt.Deps()
	if err != nil {
		return err
	}

	if mux, ok := r.Mux().(*chi.Mux); ok {
		mux.NotFound(phttp.NotFound)
		mux.MethodNotAllowed(phttp.MethodNotAllowed)
	}

	started := time.Now()
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		phttp.RespondOK(w, req, map[string]any{"ok": true, "uptime": int64(time.Since(started) / time.Second)})
	})
	if opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	mods := Modules(deps)
	stack := append(Stack(opt.Config, opt.Metrics), pagination.Middleware())

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
	return nil
}

// Stack is the common middleware for /api/v1 tuned from CORE_API_*
func Stack(root config.Conf, m *metrics.Metrics) []func(http.Handler) http.Handler {
	c := root.Prefix("CORE_API_")
	o := httpkit.StackOptions{
		Slow:        c.MayDuration("SLOW_REQUEST", 0),
		BodyLimit:   int64(c.MayInt("BODY_LIMIT", DefaultBodyLimit)),
		CORSOrigins: c.MayCSV("CORS_ORIGINS", nil),
		LogHeaders:  c.MayCSV("LOG_HEADERS", nil),
		Redact:      c.MayCSV("LOG_REDACT", nil),
		Timeout:     c.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
	}
	if m != nil {
		o.Metrics = middleware.HTTPObserver(m)
	}
	return httpkit.CommonStack(o)
}
