// Package http provides http transport for chiefs
package http

import (
	stdhttp "net/http"

	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/platform/net/middleware"
	"villagevisits/internal/services/api/chiefs/domain"
	svc "villagevisits/internal/services/api/chiefs/service"
)

// Register mounts chief endpoints for admins
func Register(r httpkit.Router, s svc.Service, auth middleware.AuthPort, authz httpkit.Authorizer) {
	h := &handlers{svc: s}
	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.Gate(pr, authz, "chiefs", "create", func(g httpkit.Router) {
			httpkit.PostJSON[domain.ChiefInput](g, "/", h.create)
		})
		httpkit.Gate(pr, authz, "chiefs", "list", func(g httpkit.Router) {
			httpkit.Get(g, "/", h.list)
		})
	})
}

type handlers struct{ svc svc.Service }

// @Summary Create a village chief
// @Description Creates the user and chief profile, the generated password is emailed
// @Tags Chiefs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body domain.ChiefInput true "Chief"
// @Success 201 {object} entity.ChiefUser
// @Failure 400 {object} httpkit.Envelope "village does not exist"
// @Failure 409 {object} httpkit.Envelope "user already exists"
// @Router /chiefs [post]
func (h *handlers) create(r *stdhttp.Request, in domain.ChiefInput) (any, error) {
	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(c), nil
}

// @Summary List village chiefs
// @Tags Chiefs
// @Security BearerAuth
// @Produce json
// @Success 200 {object} pagination.Envelope[entity.ChiefUser]
// @Router /chiefs [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), httpkit.ListFrom(r))
}
