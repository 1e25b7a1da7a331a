// Package service contains the signup, login and session workflows
package service

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/normalize"
	"villagevisits/internal/modkit/repokit"
	perr "villagevisits/internal/platform/errors"
	"villagevisits/internal/platform/logger"
	pnet "villagevisits/internal/platform/net"
	"villagevisits/internal/services/api/auth/domain"
	"villagevisits/internal/services/api/auth/repo"

	"gorm.io/gorm"
)

// Service defines the service contract for auth
type Service interface {
	domain.ServicePort
	domain.AccountsPort
}

// TokenIssuer signs and revokes bearer tokens (*auth.Tokens)
type TokenIssuer interface {
	Issue(who pnet.Principal) (string, error)
	Revoke(ctx context.Context, who pnet.Principal) error
}

// PasswordHasher hashes and checks passwords (auth.Hasher)
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) (bool, error)
}

// Observer counts logins and registrations (*metrics.Metrics)
type Observer interface {
	IncLoginFailure(reason string)
	IncUsersCreated(role string)
}

// Login failure reasons
const (
	ReasonUnknownEmail  = "unknown_email"
	ReasonNotAdmin      = "not_admin"
	ReasonWrongPassword = "wrong_password"
)

// Svc implements the Service interface
type Svc struct {
	tx     repokit.Transactor
	binder repokit.ORMBinder[repo.Repo]
	tokens TokenIssuer
	hasher PasswordHasher
	obs    Observer
}

// New creates a new auth service, obs may be nil
func New(tx repokit.Transactor, binder repokit.ORMBinder[repo.Repo], tokens TokenIssuer, hasher PasswordHasher, obs Observer) *Svc {
	if tx == nil {
		panic("auth.Service requires a non nil Transactor")
	}
	if binder == nil {
		panic("auth.Service requires a non nil Repo binder")
	}
	if tokens == nil {
		panic("auth.Service requires a non nil TokenIssuer")
	}
	if hasher == nil {
		panic("auth.Service requires a non nil PasswordHasher")
	}
	return &Svc{tx: tx, binder: binder, tokens: tokens, hasher: hasher, obs: obs}
}

func (s *Svc) repo(ctx context.Context) repo.Repo { return s.binder.BindORM(s.tx.DB(ctx)) }

// AdminSignup registers an admin and logs them in
func (s *Svc) AdminSignup(ctx context.Context, in domain.AdminSignupInput) (domain.AdminSession, error) {
	acc := domain.NewAccount{
		Firstname:   in.Firstname,
		Surname:     in.Surname,
		Email:       in.Email,
		NID:         in.NID,
		Gender:      in.Gender,
		PhoneNumber: in.PhoneNumber,
		Role:        pnet.RoleAdmin,
		Password:    in.Password,
	}
	if err := s.CheckUnique(ctx, acc.Email, acc.PhoneNumber, acc.NID); err != nil {
		return domain.AdminSession{}, err
	}

	var user *entity.User
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		u, err := s.Create(ctx, tx, acc)
		if err != nil {
			return err
		}
		admin := &entity.AdminUser{UserID: u.ID, Position: normalize.Name(in.Position)}
		if err := s.binder.BindORM(tx).CreateAdmin(ctx, admin); err != nil {
			return perr.FromGorm(err, "create admin profile")
		}
		u.Admin = admin
		user = u
		return nil
	})
	if err != nil {
		return domain.AdminSession{}, err
	}

	token, err := s.tokens.Issue(principal(user))
	if err != nil {
		return domain.AdminSession{}, err
	}
	logger.C(ctx).Info().Str("user_id", user.ID).Msg("admin signed up")
	return domain.AdminSession{AdminUser: user, Token: token}, nil
}

// AdminLogin logs in an admin, other roles look unregistered here
func (s *Svc) AdminLogin(ctx context.Context, in domain.LoginInput) (domain.Session, error) {
	return s.login(ctx, in, true)
}

// Login logs in a user of any role
func (s *Svc) Login(ctx context.Context, in domain.LoginInput) (domain.Session, error) {
	return s.login(ctx, in, false)
}

func (s *Svc) login(ctx context.Context, in domain.LoginInput, adminOnly bool) (domain.Session, error) {
	u, err := s.repo(ctx).ByEmail(ctx, normalize.Email(in.Email))
	if err != nil {
		if perr.IsNotFound(err) {
			s.fail(ReasonUnknownEmail)
			return domain.Session{}, perr.NotFoundf("email not registered")
		}
		return domain.Session{}, perr.FromGorm(err, "load user")
	}
	if adminOnly && u.Role != pnet.RoleAdmin {
		s.fail(ReasonNotAdmin)
		return domain.Session{}, perr.NotFoundf("email not registered")
	}

	ok, err := s.hasher.Compare(u.Password, in.Password)
	if err != nil {
		return domain.Session{}, err
	}
	if !ok {
		s.fail(ReasonWrongPassword)
		return domain.Session{}, perr.InvalidArgf("incorrect email or password")
	}

	token, err := s.tokens.Issue(principal(u))
	if err != nil {
		return domain.Session{}, err
	}
	logger.C(ctx).Info().Str("user_id", u.ID).Str("role", u.Role).Msg("user logged in")
	return domain.Session{User: u, Token: token}, nil
}

// Logout revokes the caller's current token
func (s *Svc) Logout(ctx context.Context) error {
	who, ok := pnet.PrincipalFrom(ctx)
	if !ok {
		return perr.Unauthorizedf("missing bearer token")
	}
	return s.tokens.Revoke(ctx, who)
}

// Me returns the caller with their role profile
func (s *Svc) Me(ctx context.Context) (*entity.User, error) {
	who, ok := pnet.PrincipalFrom(ctx)
	if !ok {
		return nil, perr.Unauthorizedf("missing bearer token")
	}
	u, err := s.repo(ctx).ByID(ctx, who.UserID)
	if err != nil {
		return nil, perr.FromGorm(err, "user not found")
	}
	return u, nil
}

// CheckUnique implements domain.AccountsPort
func (s *Svc) CheckUnique(ctx context.Context, email, phone, nid string) error {
	taken, err := s.repo(ctx).Taken(ctx, normalize.Email(email), normalize.Phone(phone), normalize.NID(nid))
	if err != nil {
		return perr.FromGorm(err, "check user")
	}
	if taken {
		return perr.DuplicateKeyf("user already exists")
	}
	return nil
}

// Create implements domain.AccountsPort
// a unique violation racing past CheckUnique still surfaces as a duplicate key
func (s *Svc) Create(ctx context.Context, tx *gorm.DB, a domain.NewAccount) (*entity.User, error) {
	hash, err := s.hasher.Hash(a.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Firstname:   normalize.Name(a.Firstname),
		Surname:     normalize.Name(a.Surname),
		Email:       normalize.Email(a.Email),
		NID:         normalize.NID(a.NID),
		Gender:      a.Gender,
		PhoneNumber: normalize.Phone(a.PhoneNumber),
		Password:    hash,
		Role:        a.Role,
	}
	if err := s.binder.BindORM(tx).CreateUser(ctx, u); err != nil {
		err = perr.FromGorm(err, "create user")
		if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
			return nil, perr.Wrap(err, perr.ErrorCodeDuplicateKey, "user already exists")
		}
		return nil, err
	}
	if s.obs != nil {
		s.obs.IncUsersCreated(a.Role)
	}
	return u, nil
}

func (s *Svc) fail(reason string) {
	if s.obs != nil {
		s.obs.IncLoginFailure(reason)
	}
}

// principal builds the token subject, chiefs and residents carry their village and profile
func principal(u *entity.User) pnet.Principal {
	who := pnet.Principal{UserID: u.ID, Role: u.Role}
	switch {
	case u.Chief != nil:
		who.VillageID = u.Chief.VillageID
		who.ProfileID = u.Chief.ID
	case u.Resident != nil:
		who.VillageID = u.Resident.VillageID
		who.ProfileID = u.Resident.ID
	case u.Admin != nil:
		who.ProfileID = u.Admin.ID
	}
	return who
}
