// Package http provides http transport for announcements
package http

import (
	stdhttp "net/http"

	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/platform/net/middleware"
	"villagevisits/internal/services/api/announcements/domain"
	svc "villagevisits/internal/services/api/announcements/service"
)

// Register mounts announcement endpoints
func Register(r httpkit.Router, s svc.Service, auth middleware.AuthPort, authz httpkit.Authorizer) {
	h := &handlers{svc: s}
	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.Gate(pr, authz, "announcements", "create", func(g httpkit.Router) {
			httpkit.PostJSON[domain.AnnouncementInput](g, "/", h.create)
		})
		httpkit.Gate(pr, authz, "announcements", "list", func(g httpkit.Router) {
			httpkit.Get(g, "/", h.list)
		})
		httpkit.Gate(pr, authz, "announcements", "read", func(g httpkit.Router) {
			httpkit.Get(g, "/{announcementId}", h.get)
		})
		httpkit.Gate(pr, authz, "announcements", "delete", func(g httpkit.Router) {
			httpkit.Delete(g, "/{announcementId}", h.remove)
		})
	})
}

type handlers struct{ svc svc.Service }

// @Summary Post an announcement to the caller's village
// @Tags Announcements
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body domain.AnnouncementInput true "Announcement"
// @Success 201 {object} domain.Posted
// @Router /announcements [post]
func (h *handlers) create(r *stdhttp.Request, in domain.AnnouncementInput) (any, error) {
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(p), nil
}

// @Summary List announcements of the caller's village
// @Tags Announcements
// @Security BearerAuth
// @Produce json
// @Success 200 {object} pagination.Envelope[entity.Announcement]
// @Router /announcements [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), httpkit.ListFrom(r))
}

// @Summary Get an announcement
// @Tags Announcements
// @Security BearerAuth
// @Param announcementId path string true "Announcement id"
// @Success 200 {object} entity.Announcement
// @Failure 404 {object} httpkit.Envelope
// @Router /announcements/{announcementId} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.IDParam(r, "announcementId")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// @Summary Delete an announcement
// @Tags Announcements
// @Security BearerAuth
// @Param announcementId path string true "Announcement id"
// @Success 200 {object} domain.Deleted
// @Failure 404 {object} httpkit.Envelope
// @Router /announcements/{announcementId} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id, err := httpkit.IDParam(r, "announcementId")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	return domain.Deleted{ID: id}, nil
}
