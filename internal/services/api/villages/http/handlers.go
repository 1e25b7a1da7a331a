// Package http provides http transport for villages
package http

import (
	stdhttp "net/http"

	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/platform/net/middleware"
	"villagevisits/internal/services/api/villages/domain"
	svc "villagevisits/internal/services/api/villages/service"
)

// Register mounts village endpoints, every one of them is admin only
func Register(r httpkit.Router, s svc.Service, auth middleware.AuthPort, authz httpkit.Authorizer) {
	h := &handlers{svc: s}
	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.Gate(pr, authz, "villages", "create", func(g httpkit.Router) {
			httpkit.PostJSON[domain.VillageInput](g, "/", h.create)
		})
		httpkit.Gate(pr, authz, "villages", "list", func(g httpkit.Router) {
			httpkit.Get(g, "/", h.list)
		})
		httpkit.Gate(pr, authz, "villages", "read", func(g httpkit.Router) {
			httpkit.Get(g, "/{villageId}", h.get)
		})
		httpkit.Gate(pr, authz, "villages", "update", func(g httpkit.Router) {
			httpkit.PatchJSON[domain.VillageInput](g, "/{villageId}", h.update)
		})
		httpkit.Gate(pr, authz, "villages", "delete", func(g httpkit.Router) {
			httpkit.Delete(g, "/{villageId}", h.remove)
		})
	})
}

type handlers struct{ svc svc.Service }

// @Summary Create a village
// @Tags Villages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body domain.VillageInput true "Village"
// @Success 201 {object} entity.Village
// @Failure 409 {object} httpkit.Envelope "village already exists"
// @Router /villages [post]
func (h *handlers) create(r *stdhttp.Request, in domain.VillageInput) (any, error) {
	v, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(v), nil
}

// @Summary List villages
// @Description Filter with field=value or field.op=value, sort=field dir, include/exclude, page and count
// @Tags Villages
// @Security BearerAuth
// @Produce json
// @Success 200 {object} pagination.Envelope[entity.Village]
// @Router /villages [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), httpkit.ListFrom(r))
}

// @Summary Get a village
// @Tags Villages
// @Security BearerAuth
// @Param villageId path string true "Village id"
// @Success 200 {object} entity.Village
// @Failure 404 {object} httpkit.Envelope
// @Router /villages/{villageId} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.IDParam(r, "villageId")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// @Summary Update a village
// @Tags Villages
// @Security BearerAuth
// @Param villageId path string true "Village id"
// @Param payload body domain.VillageInput true "Village"
// @Success 200 {object} entity.Village
// @Router /villages/{villageId} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.VillageInput) (any, error) {
	id, err := httpkit.IDParam(r, "villageId")
	if err != nil {
		return nil, err
	}
	return h.svc.Update(r.Context(), id, in)
}

// @Summary Delete a village and everything in it
// @Tags Villages
// @Security BearerAuth
// @Param villageId path string true "Village id"
// @Success 200 {object} domain.Deleted
// @Router /villages/{villageId} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id, err := httpkit.IDParam(r, "villageId")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	return domain.Deleted{ID: id}, nil
}
