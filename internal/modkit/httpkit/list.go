package httpkit

import (
	"net/http"

	"villagevisits/internal/core/autoquery"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/scope"
	perr "villagevisits/internal/platform/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListRequest is everything a list endpoint reads from the request
type ListRequest struct {
	Query autoquery.Query
	Page  pagination.Params
	Scope scope.Scope
}

// ListFrom collects the query string, page and caller scope
// page and scope come from their middlewares and fall back to defaults and None
func ListFrom(r *http.Request) ListRequest {
	return ListRequest{
		Query: autoquery.FromValues(r.URL.Query()),
		Page:  pagination.From(r.Context()),
		Scope: scope.From(r.Context()),
	}
}

// IDParam reads a uuid path parameter, a malformed id is a 400
func IDParam(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", perr.WithField(perr.InvalidArgf("invalid %s", name), name)
	}
	return id.String(), nil
}
