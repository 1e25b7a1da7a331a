// Package http provides http transport for signup, login and sessions
package http

import (
	stdhttp "net/http"

	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/platform/net/middleware"
	"villagevisits/internal/services/api/auth/domain"
	svc "villagevisits/internal/services/api/auth/service"
)

// Options carries the route guards the auth endpoints need
type Options struct {
	Auth  middleware.AuthPort
	Authz httpkit.Authorizer
	// LoginLimit throttles the public credential routes, nil disables it
	LoginLimit func(stdhttp.Handler) stdhttp.Handler
}

// Register mounts the admin and users roots on r
func Register(r httpkit.Router, s svc.Service, o Options) {
	h := &handlers{svc: s}

	r.Route("/admin", func(ar httpkit.Router) {
		limited(ar, o.LoginLimit, func(lr httpkit.Router) {
			httpkit.PostJSON[domain.AdminSignupInput](lr, "/signup", h.adminSignup)
			httpkit.PostJSON[domain.LoginInput](lr, "/login", h.adminLogin)
		})
	})

	r.Route("/users", func(ur httpkit.Router) {
		limited(ur, o.LoginLimit, func(lr httpkit.Router) {
			httpkit.PostJSON[domain.LoginInput](lr, "/login", h.login)
		})
		httpkit.Protected(ur, o.Auth, func(pr httpkit.Router) {
			httpkit.Gate(pr, o.Authz, "users", "logout", func(g httpkit.Router) {
				httpkit.Post(g, "/logout", h.logout)
			})
			httpkit.Gate(pr, o.Authz, "users", "me", func(g httpkit.Router) {
				httpkit.Get(g, "/me", h.me)
			})
		})
	})
}

func limited(r httpkit.Router, mw func(stdhttp.Handler) stdhttp.Handler, fn func(httpkit.Router)) {
	r.Group(func(g httpkit.Router) {
		if mw != nil {
			g.Use(mw)
		}
		fn(g)
	})
}

type handlers struct{ svc svc.Service }

// @Summary Register an admin
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.AdminSignupInput true "Admin"
// @Success 201 {object} domain.AdminSession
// @Failure 409 {object} httpkit.Envelope "user already exists"
// @Failure 422 {object} httpkit.Envelope "validation failed"
// @Router /admin/signup [post]
func (h *handlers) adminSignup(r *stdhttp.Request, in domain.AdminSignupInput) (any, error) {
	out, err := h.svc.AdminSignup(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.LoginInput true "Credentials"
// @Success 200 {object} domain.Session
// @Failure 404 {object} httpkit.Envelope "email not registered"
// @Router /admin/login [post]
func (h *handlers) adminLogin(r *stdhttp.Request, in domain.LoginInput) (any, error) {
	return h.svc.AdminLogin(r.Context(), in)
}

// @Summary Login for any role
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.LoginInput true "Credentials"
// @Success 200 {object} domain.Session
// @Router /users/login [post]
func (h *handlers) login(r *stdhttp.Request, in domain.LoginInput) (any, error) {
	return h.svc.Login(r.Context(), in)
}

// @Summary Revoke the current token
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} domain.Message
// @Router /users/logout [post]
func (h *handlers) logout(r *stdhttp.Request) (any, error) {
	if err := h.svc.Logout(r.Context()); err != nil {
		return nil, err
	}
	return domain.Message{Message: "logged out"}, nil
}

// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} entity.User
// @Router /users/me [get]
func (h *handlers) me(r *stdhttp.Request) (any, error) {
	return h.svc.Me(r.Context())
}
