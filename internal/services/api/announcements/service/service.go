// Package service contains announcement workflows
package service

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/normalize"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	"villagevisits/internal/modkit/scope"
	perr "villagevisits/internal/platform/errors"
	"villagevisits/internal/platform/events"
	"villagevisits/internal/platform/logger"
	pnet "villagevisits/internal/platform/net"
	"villagevisits/internal/services/api/announcements/domain"
	"villagevisits/internal/services/api/announcements/repo"

	"gorm.io/gorm"
)

// Service defines the service contract for announcements
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	tx     repokit.Transactor
	binder repokit.ORMBinder[repo.Repo]
	events events.Publisher
}

// New creates a new announcement service, a nil publisher drops events
func New(tx repokit.Transactor, binder repokit.ORMBinder[repo.Repo], pub events.Publisher) *Svc {
	if tx == nil {
		panic("announcements.Service requires a non nil Transactor")
	}
	if binder == nil {
		panic("announcements.Service requires a non nil Repo binder")
	}
	if pub == nil {
		pub = events.Nop{}
	}
	return &Svc{tx: tx, binder: binder, events: pub}
}

func (s *Svc) repo(ctx context.Context) repo.Repo { return s.binder.BindORM(s.tx.DB(ctx)) }

// Create posts an announcement to the calling chief's village
func (s *Svc) Create(ctx context.Context, in domain.AnnouncementInput) (domain.Posted, error) {
	who, _ := pnet.PrincipalFrom(ctx)
	if who.Role != pnet.RoleVillageChief || who.VillageID == "" {
		return domain.Posted{}, perr.Forbiddenf("only a village chief can post announcements")
	}

	r := s.repo(ctx)
	author, err := r.Author(ctx, who.UserID)
	if err != nil {
		return domain.Posted{}, perr.FromGorm(err, "author not found")
	}
	a := &entity.Announcement{
		UserID:      who.UserID,
		VillageID:   who.VillageID,
		Title:       normalize.Text(in.Title),
		Description: normalize.Text(in.Description),
	}
	if err := r.Create(ctx, a); err != nil {
		return domain.Posted{}, perr.FromGorm(err, "create announcement")
	}

	s.events.Publish(ctx, events.New(events.AnnouncementPosted, a.VillageID, a).Stamp(ctx))
	logger.C(ctx).Info().Str("announcement_id", a.ID).Msg("announcement posted")
	return domain.Posted{Announcement: a, CreatedBy: author}, nil
}

// List returns the announcements of the caller's village with their authors
func (s *Svc) List(ctx context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.Announcement], error) {
	items, total, err := s.repo(ctx).List(ctx, repokit.ListQuery{
		Plan:     entity.AnnouncementResource.Plan(req.Query),
		Page:     req.Page,
		Filters:  []func(*gorm.DB) *gorm.DB{req.Scope.Apply(scope.VillageBound)},
		Preloads: []string{"Author"},
	})
	if err != nil {
		return pagination.Envelope[entity.Announcement]{}, perr.FromGorm(err, "list announcements")
	}
	return pagination.New(req.Page, total, items), nil
}

// Get returns one announcement, those of other villages are not found
func (s *Svc) Get(ctx context.Context, id string) (*entity.Announcement, error) {
	a, err := s.repo(ctx).ByID(ctx, id, scope.From(ctx).Apply(scope.VillageBound))
	if err != nil {
		return nil, perr.FromGorm(err, "announcement not found")
	}
	return a, nil
}

// Delete removes an announcement of the caller's village
func (s *Svc) Delete(ctx context.Context, id string) error {
	n, err := s.repo(ctx).Delete(ctx, id, scope.From(ctx).Apply(scope.VillageBound))
	if err != nil {
		return perr.FromGorm(err, "delete announcement")
	}
	if n == 0 {
		return perr.NotFoundf("announcement not found")
	}
	logger.C(ctx).Info().Str("announcement_id", id).Msg("announcement deleted")
	return nil
}
