// Package service contains visit recording and reporting workflows
package service

import (
	"context"
	"time"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/normalize"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	"villagevisits/internal/modkit/scope"
	"villagevisits/internal/platform/blob"
	perr "villagevisits/internal/platform/errors"
	"villagevisits/internal/platform/events"
	"villagevisits/internal/platform/logger"
	pnet "villagevisits/internal/platform/net"
	ptime "villagevisits/internal/platform/time"
	"villagevisits/internal/services/api/visits/domain"
	"villagevisits/internal/services/api/visits/repo"

	"gorm.io/gorm"
)

// Stats bounds
const (
	DefaultStatsDays = 30
	MaxStatsDays     = 366
	DefaultTop       = 5
	MaxTop           = 50
)

// Service defines the service contract for visits
type Service interface{ domain.ServicePort }

// Observer counts recorded visits and visitors
type Observer interface {
	IncVisitsCreated()
	IncVisitorsCreated()
}

// Options carries the optional collaborators of the visit service
type Options struct {
	// PG runs the stats SQL, stats answer 503 without it
	PG     repokit.TxRunner
	Stats  repokit.Binder[repo.Stats]
	Blobs  blob.Store
	Events events.Publisher
	Obs    Observer
	Now    func() time.Time
}

// Svc implements the Service interface
type Svc struct {
	tx     repokit.Transactor
	binder repokit.ORMBinder[repo.Repo]
	o      Options
}

// New creates a new visit service
func New(tx repokit.Transactor, binder repokit.ORMBinder[repo.Repo], o Options) *Svc {
	if tx == nil {
		panic("visits.Service requires a non nil Transactor")
	}
	if binder == nil {
		panic("visits.Service requires a non nil Repo binder")
	}
	if o.Stats == nil {
		o.Stats = repo.NewPG()
	}
	if o.Blobs == nil {
		o.Blobs = blob.Disabled{}
	}
	if o.Events == nil {
		o.Events = events.Nop{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return &Svc{tx: tx, binder: binder, o: o}
}

// Create records a visit to the calling resident
// the visitor is resolved or created and the visit inserted in one transaction
func (s *Svc) Create(ctx context.Context, in domain.VisitInput, file *domain.Attachment) (*entity.Visit, error) {
	who, _ := pnet.PrincipalFrom(ctx)
	if who.Role != pnet.RoleResident || who.ProfileID == "" || who.VillageID == "" {
		return nil, perr.Forbiddenf("only a resident can record a visit")
	}
	if err := in.Check(); err != nil {
		return nil, err
	}
	arrival, err := ptime.Date("arrivalDate", in.ArrivalDate)
	if err != nil {
		return nil, err
	}

	visit := &entity.Visit{
		ResidentUserID: who.ProfileID,
		VillageID:      who.VillageID,
		Origin:         normalize.Text(in.Origin),
		VisitReason:    normalize.Text(in.VisitReason),
		Duration:       normalize.Text(in.Duration),
		ArrivalDate:    arrival,
	}
	if file != nil {
		obj, err := s.o.Blobs.Put(ctx, blob.Key("visits/"+who.VillageID, file.Name), file.Body, file.Size, file.ContentType)
		if err != nil {
			return nil, err
		}
		visit.File = &obj.URL
	}

	createdVisitor := false
	err = s.tx.InTx(ctx, func(tx *gorm.DB) error {
		r := s.binder.BindORM(tx)
		v, created, err := resolveVisitor(ctx, r, in)
		if err != nil {
			return err
		}
		visit.VisitorID = v.ID
		if err := r.Create(ctx, visit); err != nil {
			return perr.FromGorm(err, "create visit")
		}
		visit.Visitor = v
		createdVisitor = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.o.Obs != nil {
		s.o.Obs.IncVisitsCreated()
		if createdVisitor {
			s.o.Obs.IncVisitorsCreated()
		}
	}
	s.o.Events.Publish(ctx, events.New(events.VisitCreated, visit.VillageID, visit).Stamp(ctx))
	logger.C(ctx).Info().Str("visit_id", visit.ID).Bool("new_visitor", createdVisitor).Msg("visit recorded")
	return visit, nil
}

// resolveVisitor returns the visitor named by in, creating it when the inline one is unknown
func resolveVisitor(ctx context.Context, r repo.Repo, in domain.VisitInput) (*entity.Visitor, bool, error) {
	if in.VisitorID != "" {
		v, err := r.VisitorByID(ctx, in.VisitorID)
		if err != nil {
			return nil, false, perr.FromGorm(err, "visitor not found")
		}
		return v, false, nil
	}

	vi := in.Visitor
	nid, phone, email := normalize.NID(vi.NID), normalize.Phone(vi.PhoneNumber), normalize.Email(vi.Email)
	v, err := r.FindVisitor(ctx, nid, phone, email)
	if err == nil {
		return v, false, nil
	}
	if !perr.IsNotFound(err) {
		return nil, false, perr.FromGorm(err, "find visitor")
	}

	v = &entity.Visitor{
		FullName:    normalize.Name(vi.FullName),
		NID:         optional(nid),
		Email:       optional(email),
		PhoneNumber: phone,
		Gender:      vi.Gender,
		Nationality: normalize.Name(vi.Nationality),
		Profession:  optional(normalize.Text(vi.Profession)),
	}
	if err := r.CreateVisitor(ctx, v); err != nil {
		return nil, false, perr.FromGorm(err, "create visitor")
	}
	return v, true, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// List returns the visits visible to the caller
// chiefs see their village with visitor and resident, residents their own with visitor, admins everything plain
func (s *Svc) List(ctx context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.Visit], error) {
	who, _ := pnet.PrincipalFrom(ctx)
	q := repokit.ListQuery{
		Plan:    entity.VisitResource.Plan(req.Query),
		Page:    req.Page,
		Filters: []func(*gorm.DB) *gorm.DB{req.Scope.Apply(scope.ResidentBound)},
	}
	switch who.Role {
	case pnet.RoleVillageChief:
		q.Preloads = []string{"Visitor", "Resident.User"}
	case pnet.RoleResident:
		q.Preloads = []string{"Visitor"}
	}
	items, total, err := s.binder.BindORM(s.tx.DB(ctx)).List(ctx, q)
	if err != nil {
		return pagination.Envelope[entity.Visit]{}, perr.FromGorm(err, "list visits")
	}
	return pagination.New(req.Page, total, items), nil
}

// Stats counts visits per arrival day and by origin over the last q.Days days
func (s *Svc) Stats(ctx context.Context, q domain.StatsQuery) (domain.Stats, error) {
	sc := scope.From(ctx)
	if sc.IsNone() || (!sc.All && sc.VillageID == "") {
		return domain.Stats{}, perr.Forbiddenf("no village in scope")
	}
	if s.o.PG == nil {
		return domain.Stats{}, perr.Unavailablef("visit statistics are unavailable")
	}
	q = clampStats(q)
	villageID := ""
	if !sc.All {
		villageID = sc.VillageID
	}

	now := s.o.Now().UTC()
	since := ptime.Window(now, q.Days)
	out := domain.Stats{Since: since}
	err := s.o.PG.Tx(ctx, func(qr repokit.Queryer) error {
		st := s.o.Stats.Bind(qr)
		days, err := st.PerDay(ctx, villageID, since)
		if err != nil {
			return err
		}
		top, err := st.TopOrigins(ctx, villageID, since, q.Top)
		if err != nil {
			return err
		}
		out.PerDay, out.TopOrigins = days, top
		return nil
	})
	if err != nil {
		return domain.Stats{}, perr.FromPostgres(err, "visit statistics")
	}
	for _, d := range out.PerDay {
		out.Total += d.Visits
	}
	return out, nil
}

func clampStats(q domain.StatsQuery) domain.StatsQuery {
	switch {
	case q.Days <= 0:
		q.Days = DefaultStatsDays
	case q.Days > MaxStatsDays:
		q.Days = MaxStatsDays
	}
	switch {
	case q.Top <= 0:
		q.Top = DefaultTop
	case q.Top > MaxTop:
		q.Top = MaxTop
	}
	return q
}
