// Package service contains resident registration workflows
package service

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/normalize"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	"villagevisits/internal/modkit/scope"
	"villagevisits/internal/platform/auth"
	perr "villagevisits/internal/platform/errors"
	"villagevisits/internal/platform/events"
	"villagevisits/internal/platform/logger"
	"villagevisits/internal/platform/mail"
	pnet "villagevisits/internal/platform/net"
	ptime "villagevisits/internal/platform/time"
	authdom "villagevisits/internal/services/api/auth/domain"
	"villagevisits/internal/services/api/residents/domain"
	"villagevisits/internal/services/api/residents/repo"
	villdom "villagevisits/internal/services/api/villages/domain"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const passwordLength = 12

// Service defines the service contract for residents
type Service interface{ domain.ServicePort }

// Collaborators are the ports a registration goes through
type Collaborators struct {
	Accounts authdom.AccountsPort
	Villages villdom.LookupPort
	Mail     mail.Queue
	Events   events.Publisher
}

// Svc implements the Service interface
type Svc struct {
	tx     repokit.Transactor
	binder repokit.ORMBinder[repo.Repo]
	c      Collaborators
}

// New creates a new resident service
func New(tx repokit.Transactor, binder repokit.ORMBinder[repo.Repo], c Collaborators) *Svc {
	if tx == nil {
		panic("residents.Service requires a non nil Transactor")
	}
	if binder == nil {
		panic("residents.Service requires a non nil Repo binder")
	}
	if c.Accounts == nil || c.Villages == nil {
		panic("residents.Service requires the accounts and villages ports")
	}
	if c.Mail == nil {
		c.Mail = mail.Nop{}
	}
	if c.Events == nil {
		c.Events = events.Nop{}
	}
	return &Svc{tx: tx, binder: binder, c: c}
}

// Register creates a resident in the calling chief's village
func (s *Svc) Register(ctx context.Context, in domain.ResidentInput) (*entity.ResidentUser, error) {
	sc := scope.From(ctx)
	if sc.IsNone() || sc.VillageID == "" {
		return nil, perr.Forbiddenf("only a village chief can register residents")
	}
	dob, err := ptime.Date("dateOfBirth", in.DateOfBirth)
	if err != nil {
		return nil, err
	}

	var village *entity.Village
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.c.Villages.Get(gctx, sc.VillageID)
		if perr.IsNotFound(err) {
			return perr.NotFoundf("village does not exist")
		}
		village = v
		return err
	})
	g.Go(func() error {
		return s.c.Accounts.CheckUnique(gctx, in.Email, in.PhoneNumber, in.NID)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	password, err := auth.GeneratePassword(passwordLength)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "generate password")
	}

	res := &entity.ResidentUser{
		VillageID:     village.ID,
		DateOfBirth:   dob,
		Nationality:   normalize.Name(in.Nationality),
		Profession:    normalize.Text(in.Profession),
		MaritalStatus: in.MaritalStatus,
	}
	err = s.tx.InTx(ctx, func(tx *gorm.DB) error {
		u, err := s.c.Accounts.Create(ctx, tx, authdom.NewAccount{
			Firstname:   in.Firstname,
			Surname:     in.Surname,
			Email:       in.Email,
			NID:         in.NID,
			Gender:      in.Gender,
			PhoneNumber: in.PhoneNumber,
			Role:        pnet.RoleResident,
			Password:    password,
		})
		if err != nil {
			return err
		}
		res.UserID = u.ID
		if err := s.binder.BindORM(tx).Create(ctx, res); err != nil {
			return perr.FromGorm(err, "create resident")
		}
		res.User = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.c.Mail.Dispatch(mail.Message{
		To:       res.User.Email,
		Template: mail.ResidentRegistered,
		Data: mail.Data{
			Name:     res.User.Firstname,
			Email:    res.User.Email,
			Password: password,
			Village:  village.Village,
		},
	})
	s.c.Events.Publish(ctx, events.New(events.ResidentRegistered, village.ID, res).Stamp(ctx))
	logger.C(ctx).Info().Str("resident_id", res.ID).Str("village_id", village.ID).Msg("resident registered")
	return res, nil
}

// List returns the residents visible to the caller, a chief sees their village only
func (s *Svc) List(ctx context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.ResidentUser], error) {
	items, total, err := s.binder.BindORM(s.tx.DB(ctx)).List(ctx, repokit.ListQuery{
		Plan:     entity.ResidentResource.Plan(req.Query),
		Page:     req.Page,
		Filters:  []func(*gorm.DB) *gorm.DB{req.Scope.Apply(scope.VillageBound)},
		Preloads: []string{"User"},
	})
	if err != nil {
		return pagination.Envelope[entity.ResidentUser]{}, perr.FromGorm(err, "list residents")
	}
	return pagination.New(req.Page, total, items), nil
}
