package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is the handler shape routes take
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing surface modules mount on, chi stays behind it
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)
	Handle(path string, h http.Handler)

	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(prefix string, fn func(Router))

	// Mux is the root handler, sub routers included
	Mux() http.Handler
}

// AdaptChi wraps m as a Router
func AdaptChi(m *chi.Mux) Router { return chiRouter{root: m, r: m} }

type chiRouter struct {
	root *chi.Mux
	r    chi.Router
}

func (c chiRouter) sub(r chi.Router) Router { return chiRouter{root: c.root, r: r} }

func (c chiRouter) Get(p string, h Handler)    { c.r.Get(p, h) }
func (c chiRouter) Post(p string, h Handler)   { c.r.Post(p, h) }
func (c chiRouter) Put(p string, h Handler)    { c.r.Put(p, h) }
func (c chiRouter) Patch(p string, h Handler)  { c.r.Patch(p, h) }
func (c chiRouter) Delete(p string, h Handler) { c.r.Delete(p, h) }

func (c chiRouter) Handle(p string, h http.Handler) { c.r.Handle(p, h) }

func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(r chi.Router) { fn(c.sub(r)) })
}

func (c chiRouter) Route(prefix string, fn func(Router)) {
	c.r.Route(prefix, func(r chi.Router) { fn(c.sub(r)) })
}

func (c chiRouter) Mux() http.Handler { return c.root }
