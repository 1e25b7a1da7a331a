// Package http provides http transport for visitors
package http

import (
	stdhttp "net/http"

	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/platform/net/middleware"
	svc "villagevisits/internal/services/api/visitors/service"
)

// Register mounts the visitors listing for residents
func Register(r httpkit.Router, s svc.Service, auth middleware.AuthPort, authz httpkit.Authorizer) {
	h := &handlers{svc: s}
	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.Gate(pr, authz, "visitors", "list", func(g httpkit.Router) {
			httpkit.Get(g, "/", h.list)
		})
	})
}

type handlers struct{ svc svc.Service }

// @Summary List the caller's visitors
// @Description Returns the resident's visits, each with its visitor
// @Tags Visitors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} pagination.Envelope[entity.Visit]
// @Router /visitors [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), httpkit.ListFrom(r))
}
