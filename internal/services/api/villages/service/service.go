// Package service contains village workflows
package service

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/normalize"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	perr "villagevisits/internal/platform/errors"
	"villagevisits/internal/platform/events"
	"villagevisits/internal/platform/logger"
	"villagevisits/internal/services/api/villages/domain"
	"villagevisits/internal/services/api/villages/repo"

	"golang.org/x/sync/errgroup"
)

// Service defines the service contract for villages
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	tx     repokit.Transactor
	binder repokit.ORMBinder[repo.Repo]
	events events.Publisher
}

// New creates a new village service, a nil publisher drops events
func New(tx repokit.Transactor, binder repokit.ORMBinder[repo.Repo], pub events.Publisher) *Svc {
	if tx == nil {
		panic("villages.Service requires a non nil Transactor")
	}
	if binder == nil {
		panic("villages.Service requires a non nil Repo binder")
	}
	if pub == nil {
		pub = events.Nop{}
	}
	return &Svc{tx: tx, binder: binder, events: pub}
}

func (s *Svc) repo(ctx context.Context) repo.Repo { return s.binder.BindORM(s.tx.DB(ctx)) }

func fill(v *entity.Village, in domain.VillageInput) {
	v.Province = normalize.Name(in.Province)
	v.District = normalize.Name(in.District)
	v.Sector = normalize.Name(in.Sector)
	v.Cell = normalize.Name(in.Cell)
	v.Village = normalize.Name(in.Village)
	about := normalize.Text(in.AboutVillage)
	v.AboutVillage = &about
}

// Create adds a village, (cell, village) must be free
func (s *Svc) Create(ctx context.Context, in domain.VillageInput) (*entity.Village, error) {
	v := &entity.Village{}
	fill(v, in)

	r := s.repo(ctx)
	taken, err := r.Named(ctx, v.Cell, v.Village, "")
	if err != nil {
		return nil, perr.FromGorm(err, "check village")
	}
	if taken {
		return nil, perr.DuplicateKeyf("village already exists")
	}
	if err := r.Create(ctx, v); err != nil {
		return nil, conflict(perr.FromGorm(err, "create village"))
	}

	s.events.Publish(ctx, events.New(events.VillageCreated, v.ID, v).Stamp(ctx))
	logger.C(ctx).Info().Str("village_id", v.ID).Msg("village created")
	return v, nil
}

// List returns one page of villages
func (s *Svc) List(ctx context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.Village], error) {
	items, total, err := s.repo(ctx).List(ctx, repokit.ListQuery{
		Plan: entity.VillageResource.Plan(req.Query),
		Page: req.Page,
	})
	if err != nil {
		return pagination.Envelope[entity.Village]{}, perr.FromGorm(err, "list villages")
	}
	return pagination.New(req.Page, total, items), nil
}

// Get returns one village or a not found error
func (s *Svc) Get(ctx context.Context, id string) (*entity.Village, error) {
	v, err := s.repo(ctx).ByID(ctx, id)
	if err != nil {
		return nil, perr.FromGorm(err, "village not found")
	}
	return v, nil
}

// Update replaces a village's fields
// the existence and name checks are independent and run together
func (s *Svc) Update(ctx context.Context, id string, in domain.VillageInput) (*entity.Village, error) {
	next := &entity.Village{ID: id}
	fill(next, in)

	r := s.repo(ctx)
	var (
		current *entity.Village
		taken   bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := r.ByID(gctx, id)
		if err != nil {
			return perr.FromGorm(err, "village not found")
		}
		current = v
		return nil
	})
	g.Go(func() error {
		t, err := r.Named(gctx, next.Cell, next.Village, id)
		if err != nil {
			return perr.FromGorm(err, "check village")
		}
		taken = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if taken {
		return nil, perr.DuplicateKeyf("village already exists")
	}

	next.CreatedAt = current.CreatedAt
	n, err := r.Update(ctx, next)
	if err != nil {
		return nil, conflict(perr.FromGorm(err, "update village"))
	}
	if n == 0 {
		return nil, perr.NotFoundf("village not found")
	}
	return next, nil
}

// Delete removes a village and, through the schema, everything bound to it
func (s *Svc) Delete(ctx context.Context, id string) error {
	n, err := s.repo(ctx).Delete(ctx, id)
	if err != nil {
		return perr.FromGorm(err, "delete village")
	}
	if n == 0 {
		return perr.NotFoundf("village not found")
	}
	s.events.Publish(ctx, events.New(events.VillageDeleted, id, domain.Deleted{ID: id}).Stamp(ctx))
	logger.C(ctx).Info().Str("village_id", id).Msg("village deleted")
	return nil
}

func conflict(err error) error {
	if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		return perr.Wrap(err, perr.ErrorCodeDuplicateKey, "village already exists")
	}
	return err
}
