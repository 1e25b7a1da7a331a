// Package http provides http transport for residents
package http

import (
	stdhttp "net/http"

	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/platform/net/middleware"
	"villagevisits/internal/services/api/residents/domain"
	svc "villagevisits/internal/services/api/residents/service"
)

// Register mounts resident endpoints for village chiefs
func Register(r httpkit.Router, s svc.Service, auth middleware.AuthPort, authz httpkit.Authorizer) {
	h := &handlers{svc: s}
	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.Gate(pr, authz, "residents", "create", func(g httpkit.Router) {
			httpkit.PostJSON[domain.ResidentInput](g, "/register", h.register)
		})
		httpkit.Gate(pr, authz, "residents", "list", func(g httpkit.Router) {
			httpkit.Get(g, "/", h.list)
		})
	})
}

type handlers struct{ svc svc.Service }

// @Summary Register a resident in the caller's village
// @Tags Residents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body domain.ResidentInput true "Resident"
// @Success 201 {object} entity.ResidentUser
// @Failure 409 {object} httpkit.Envelope "user already exists"
// @Router /residents/register [post]
func (h *handlers) register(r *stdhttp.Request, in domain.ResidentInput) (any, error) {
	res, err := h.svc.Register(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(res), nil
}

// @Summary List residents of the caller's village
// @Tags Residents
// @Security BearerAuth
// @Produce json
// @Success 200 {object} pagination.Envelope[entity.ResidentUser]
// @Router /residents [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), httpkit.ListFrom(r))
}
