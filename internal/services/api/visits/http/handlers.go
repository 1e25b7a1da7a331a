// Package http provides http transport for visits
package http

import (
	"mime/multipart"
	stdhttp "net/http"
	"strconv"

	"villagevisits/internal/modkit/httpkit"
	perr "villagevisits/internal/platform/errors"
	"villagevisits/internal/platform/net/middleware"
	"villagevisits/internal/services/api/visits/domain"
	svc "villagevisits/internal/services/api/visits/service"
)

// FileField is the multipart part carrying a visit attachment
const FileField = "file"

// Register mounts visit endpoints
func Register(r httpkit.Router, s svc.Service, auth middleware.AuthPort, authz httpkit.Authorizer) {
	h := &handlers{svc: s}
	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.Gate(pr, authz, "visits", "create", func(g httpkit.Router) {
			httpkit.PostUpload[domain.VisitInput](g, "/", FileField, h.create)
		})
		httpkit.Gate(pr, authz, "visits", "list", func(g httpkit.Router) {
			httpkit.Get(g, "/", h.list)
		})
		httpkit.Gate(pr, authz, "visits", "stats", func(g httpkit.Router) {
			httpkit.Get(g, "/stats", h.stats)
		})
	})
}

type handlers struct{ svc svc.Service }

// @Summary Record a visit
// @Description JSON body or multipart form with an optional file part. Send visitorId or an inline visitor.
// @Tags Visits
// @Security BearerAuth
// @Accept json,mpfd
// @Produce json
// @Param payload body domain.VisitInput true "Visit"
// @Success 201 {object} entity.Visit
// @Failure 404 {object} httpkit.Envelope "visitor not found"
// @Router /visits [post]
func (h *handlers) create(r *stdhttp.Request, in domain.VisitInput, fh *multipart.FileHeader) (any, error) {
	var att *domain.Attachment
	if fh != nil {
		f, err := fh.Open()
		if err != nil {
			return nil, perr.InvalidArgf("unreadable file part")
		}
		defer f.Close()
		att = &domain.Attachment{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		}
	}
	v, err := h.svc.Create(r.Context(), in, att)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(v), nil
}

// @Summary List visits visible to the caller
// @Tags Visits
// @Security BearerAuth
// @Produce json
// @Success 200 {object} pagination.Envelope[entity.Visit]
// @Router /visits [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), httpkit.ListFrom(r))
}

// @Summary Visit statistics
// @Description Visits per arrival day and the most frequent origins over the last days
// @Tags Visits
// @Security BearerAuth
// @Produce json
// @Param days query int false "Window in days (default 30, max 366)"
// @Param top query int false "Number of origins (default 5, max 50)"
// @Success 200 {object} domain.Stats
// @Router /visits/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	days, err := intParam(r, "days")
	if err != nil {
		return nil, err
	}
	top, err := intParam(r, "top")
	if err != nil {
		return nil, err
	}
	return h.svc.Stats(r.Context(), domain.StatsQuery{Days: days, Top: top})
}

func intParam(r *stdhttp.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, perr.WithField(perr.InvalidArgf("%s must be a positive integer", name), name)
	}
	return n, nil
}
