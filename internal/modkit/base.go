package modkit

import (
	"net/http"
	"strings"

	"villagevisits/internal/modkit/httpkit"
)

// Base is the routing half every API module shares
// embed it and pass the module's own register func
type Base struct {
	built    Built
	ports    any
	register func(httpkit.Router)
}

// NewBase keeps b and chains register before any register hook from options
func NewBase(b Built, ports any, register func(httpkit.Router)) Base {
	external := b.Register
	return Base{
		built: b,
		ports: ports,
		register: func(r httpkit.Router) {
			if register != nil {
				register(r)
			}
			if external != nil {
				external(r)
			}
		},
	}
}

// MountRoutes mounts the module under its prefix with its own middlewares
func (m *Base) MountRoutes(r httpkit.Router) {
	r.Route(m.Prefix(), func(rr httpkit.Router) {
		for _, mw := range m.built.Mw {
			rr.Use(mw)
		}
		m.register(rr)
	})
}

// Register attaches the module endpoints to r without a prefix
func (m *Base) Register(r httpkit.Router) { m.register(r) }

// Ports returns the cross module port bundle
func (m *Base) Ports() any { return m.ports }

// Injected returns the ports handed in through WithPorts
func (m *Base) Injected() any { return m.built.Ports }

// Name panics when the module was built without one
func (m *Base) Name() string {
	if strings.TrimSpace(m.built.Name) == "" {
		panic("modkit: module name is required")
	}
	return m.built.Name
}

// Prefix is the mount path with one leading slash and no trailing one,
// an empty prefix panics
func (m *Base) Prefix() string {
	p := strings.Trim(strings.TrimSpace(m.built.Prefix), "/")
	if p == "" {
		panic("modkit: module " + m.built.Name + " has no prefix")
	}
	return "/" + p
}

// Middlewares returns the module middlewares
func (m *Base) Middlewares() []func(http.Handler) http.Handler { return m.built.Mw }
