// Package service lists the visitors of the calling resident
package service

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	"villagevisits/internal/modkit/scope"
	perr "villagevisits/internal/platform/errors"
	"villagevisits/internal/services/api/visitors/domain"
	"villagevisits/internal/services/api/visitors/repo"

	"gorm.io/gorm"
)

// Service defines the service contract for visitors
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	tx     repokit.Transactor
	binder repokit.ORMBinder[repo.Repo]
}

// New creates a new visitors service
func New(tx repokit.Transactor, binder repokit.ORMBinder[repo.Repo]) *Svc {
	if tx == nil {
		panic("visitors.Service requires a non nil Transactor")
	}
	if binder == nil {
		panic("visitors.Service requires a non nil Repo binder")
	}
	return &Svc{tx: tx, binder: binder}
}

// List pages through the caller's visits with each visitor preloaded
func (s *Svc) List(ctx context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.Visit], error) {
	if req.Scope.All || req.Scope.ResidentID == "" {
		return pagination.Envelope[entity.Visit]{}, perr.Forbiddenf("visitors are listed per resident")
	}
	items, total, err := s.binder.BindORM(s.tx.DB(ctx)).Visits(ctx, repokit.ListQuery{
		Plan:     entity.VisitResource.Plan(req.Query),
		Page:     req.Page,
		Filters:  []func(*gorm.DB) *gorm.DB{req.Scope.Apply(scope.ResidentBound)},
		Preloads: []string{"Visitor"},
	})
	if err != nil {
		return pagination.Envelope[entity.Visit]{}, perr.FromGorm(err, "list visitors")
	}
	return pagination.New(req.Page, total, items), nil
}
