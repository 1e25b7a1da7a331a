// Package service contains chief registration workflows
package service

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/normalize"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	"villagevisits/internal/platform/auth"
	perr "villagevisits/internal/platform/errors"
	"villagevisits/internal/platform/events"
	"villagevisits/internal/platform/logger"
	"villagevisits/internal/platform/mail"
	pnet "villagevisits/internal/platform/net"
	ptime "villagevisits/internal/platform/time"
	authdom "villagevisits/internal/services/api/auth/domain"
	"villagevisits/internal/services/api/chiefs/domain"
	"villagevisits/internal/services/api/chiefs/repo"
	villdom "villagevisits/internal/services/api/villages/domain"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// PasswordLength is the size of generated first passwords
const PasswordLength = 12

// Service defines the service contract for chiefs
type Service interface{ domain.ServicePort }

// Collaborators are the other modules and platform pieces a chief registration touches
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

// New creates a new chief service
func New(tx repokit.Transactor, binder repokit.ORMBinder[repo.Repo], c Collaborators) *Svc {
	if tx == nil {
		panic("chiefs.Service requires a non nil Transactor")
	}
	if binder == nil {
		panic("chiefs.Service requires a non nil Repo binder")
	}
	if c.Accounts == nil || c.Villages == nil {
		panic("chiefs.Service requires the accounts and villages ports")
	}
	if c.Mail == nil {
		c.Mail = mail.Nop{}
	}
	if c.Events == nil {
		c.Events = events.Nop{}
	}
	return &Svc{tx: tx, binder: binder, c: c}
}

// Create registers a chief for an existing village and mails the generated password
func (s *Svc) Create(ctx context.Context, in domain.ChiefInput) (*entity.ChiefUser, error) {
	dob, err := ptime.Date("dateOfBirth", in.DateOfBirth)
	if err != nil {
		return nil, err
	}

	var village *entity.Village
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.c.Villages.Get(gctx, in.VillageID)
		if perr.IsNotFound(err) {
			return perr.InvalidArgf("village does not exist")
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

	password, err := auth.GeneratePassword(PasswordLength)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "generate password")
	}

	chief := &entity.ChiefUser{
		VillageID:   village.ID,
		Username:    normalize.Text(in.Username),
		DateOfBirth: dob,
		Nationality: normalize.Name(in.Nationality),
		Profession:  normalize.Text(in.Profession),
	}
	err = s.tx.InTx(ctx, func(tx *gorm.DB) error {
		u, err := s.c.Accounts.Create(ctx, tx, authdom.NewAccount{
			Firstname:   in.Firstname,
			Surname:     in.Surname,
			Email:       in.Email,
			NID:         in.NID,
			Gender:      in.Gender,
			PhoneNumber: in.PhoneNumber,
			Role:        pnet.RoleVillageChief,
			Password:    password,
		})
		if err != nil {
			return err
		}
		chief.UserID = u.ID
		if err := s.binder.BindORM(tx).Create(ctx, chief); err != nil {
			err = perr.FromGorm(err, "create chief")
			if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
				return perr.Wrap(err, perr.ErrorCodeDuplicateKey, "username already taken")
			}
			return err
		}
		chief.User = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	chief.Village = village

	s.c.Mail.Dispatch(mail.Message{
		To:       chief.User.Email,
		Template: mail.AccountCreated,
		Data: mail.Data{
			Name:     chief.User.Firstname,
			Email:    chief.User.Email,
			Password: password,
			Village:  village.Village,
		},
	})
	s.c.Events.Publish(ctx, events.New(events.ChiefCreated, village.ID, chief).Stamp(ctx))
	logger.C(ctx).Info().Str("chief_id", chief.ID).Str("village_id", village.ID).Msg("chief created")
	return chief, nil
}

// List returns one page of chiefs with their user and village
func (s *Svc) List(ctx context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.ChiefUser], error) {
	items, total, err := s.binder.BindORM(s.tx.DB(ctx)).List(ctx, repokit.ListQuery{
		Plan:     entity.ChiefResource.Plan(req.Query),
		Page:     req.Page,
		Preloads: []string{"User", "Village"},
	})
	if err != nil {
		return pagination.Envelope[entity.ChiefUser]{}, perr.FromGorm(err, "list chiefs")
	}
	return pagination.New(req.Page, total, items), nil
}
