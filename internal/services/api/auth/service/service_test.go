package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/modkit/repokit"
	"villagevisits/internal/platform/auth"
	perr "villagevisits/internal/platform/errors"
	pnet "villagevisits/internal/platform/net"
	"villagevisits/internal/services/api/auth/domain"
	"villagevisits/internal/services/api/auth/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
	admins  []*entity.AdminUser
	failAdm error
}

func newFakeRepo() *fakeRepo { return &fakeRepo{byEmail: map[string]*entity.User{}} }

func (f *fakeRepo) ByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) ByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Taken(_ context.Context, email, phone, nid string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.Email == email || u.PhoneNumber == phone || u.NID == nid {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateUser(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = "user-" + u.Email
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeRepo) CreateAdmin(_ context.Context, a *entity.AdminUser) error {
	if f.failAdm != nil {
		return f.failAdm
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = "admin-1"
	f.admins = append(f.admins, a)
	return nil
}

type fakeTokens struct {
	issued  []pnet.Principal
	revoked []pnet.Principal
}

func (f *fakeTokens) Issue(who pnet.Principal) (string, error) {
	f.issued = append(f.issued, who)
	return "tok-" + who.UserID, nil
}

func (f *fakeTokens) Revoke(_ context.Context, who pnet.Principal) error {
	f.revoked = append(f.revoked, who)
	return nil
}

type countObs struct {
	failures []string
	created  []string
}

func (c *countObs) IncLoginFailure(reason string) { c.failures = append(c.failures, reason) }
func (c *countObs) IncUsersCreated(role string)   { c.created = append(c.created, role) }

type fixture struct {
	svc    *Svc
	repo   *fakeRepo
	tokens *fakeTokens
	obs    *countObs
	hasher auth.Hasher
}

func newFixture() fixture {
	r := newFakeRepo()
	tk := &fakeTokens{}
	obs := &countObs{}
	h := auth.NewHasher(4)
	binder := repokit.ORMBindFunc[repo.Repo](func(*gorm.DB) repo.Repo { return r })
	return fixture{svc: New(repokit.NoTx{}, binder, tk, h, obs), repo: r, tokens: tk, obs: obs, hasher: h}
}

func (f fixture) seed(t *testing.T, u entity.User, plain string) *entity.User {
	t.Helper()
	hash, err := f.hasher.Hash(plain)
	require.NoError(t, err)
	u.Password = hash
	if u.ID == "" {
		u.ID = "user-" + u.Email
	}
	f.repo.byEmail[u.Email] = &u
	return &u
}

func signupInput() domain.AdminSignupInput {
	return domain.AdminSignupInput{
		Firstname:   " Aline ",
		Surname:     "Uwase",
		Email:       "Aline@Example.com",
		NID:         "1199 0800 1234 5678",
		Gender:      "female",
		PhoneNumber: "250 788 000 111",
		Password:    "Secret123",
		Position:    "officer",
	}
}

func TestNew_PanicsOnNilDeps(t *testing.T) {
	t.Parallel()
	b := repokit.ORMBindFunc[repo.Repo](func(*gorm.DB) repo.Repo { return nil })
	assert.Panics(t, func() { New(nil, b, &fakeTokens{}, auth.Hasher{}, nil) })
	assert.Panics(t, func() { New(repokit.NoTx{}, nil, &fakeTokens{}, auth.Hasher{}, nil) })
	assert.Panics(t, func() { New(repokit.NoTx{}, b, nil, auth.Hasher{}, nil) })
	assert.Panics(t, func() { New(repokit.NoTx{}, b, &fakeTokens{}, nil, nil) })
}

func TestAdminSignup_CreatesNormalizedAdminAndToken(t *testing.T) {
	t.Parallel()
	f := newFixture()

	out, err := f.svc.AdminSignup(context.Background(), signupInput())
	require.NoError(t, err)

	require.NotNil(t, out.AdminUser)
	assert.Equal(t, "aline@example.com", out.AdminUser.Email)
	assert.Equal(t, "Aline", out.AdminUser.Firstname)
	assert.Equal(t, "1199080012345678", out.AdminUser.NID)
	assert.Equal(t, "250788000111", out.AdminUser.PhoneNumber)
	assert.Equal(t, pnet.RoleAdmin, out.AdminUser.Role)
	require.NotNil(t, out.AdminUser.Admin)
	assert.Equal(t, "officer", out.AdminUser.Admin.Position)
	assert.Equal(t, "tok-"+out.AdminUser.ID, out.Token)

	ok, err := f.hasher.Compare(out.AdminUser.Password, "Secret123")
	require.NoError(t, err)
	assert.True(t, ok, "stored password must be the bcrypt hash of the input")
	assert.Equal(t, []string{pnet.RoleAdmin}, f.obs.created)

	require.Len(t, f.tokens.issued, 1)
	assert.Equal(t, "admin-1", f.tokens.issued[0].ProfileID)
}

func TestAdminSignup_DuplicateIsConflict(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.seed(t, entity.User{Email: "other@example.com", PhoneNumber: "250788000111", NID: "x", Role: pnet.RoleResident}, "Secret123")

	_, err := f.svc.AdminSignup(context.Background(), signupInput())
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeDuplicateKey))
	assert.Empty(t, f.tokens.issued)
}

func TestAdminSignup_ProfileFailureAborts(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.repo.failAdm = errors.New("insert failed")

	_, err := f.svc.AdminSignup(context.Background(), signupInput())
	require.Error(t, err)
	assert.Empty(t, f.tokens.issued)
}

func TestAdminLogin(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.seed(t, entity.User{Email: "admin@example.com", Role: pnet.RoleAdmin, Admin: &entity.AdminUser{ID: "a1"}}, "Secret123")
	f.seed(t, entity.User{Email: "chief@example.com", Role: pnet.RoleVillageChief}, "Secret123")

	cases := []struct {
		name   string
		in     domain.LoginInput
		code   perr.ErrorCode
		reason string
	}{
		{"unknown email", domain.LoginInput{Email: "nobody@example.com", Password: "x"}, perr.ErrorCodeNotFound, ReasonUnknownEmail},
		{"not an admin", domain.LoginInput{Email: "chief@example.com", Password: "Secret123"}, perr.ErrorCodeNotFound, ReasonNotAdmin},
		{"wrong password", domain.LoginInput{Email: "admin@example.com", Password: "nope"}, perr.ErrorCodeInvalidArgument, ReasonWrongPassword},
	}
	for _, tc := range cases {
		_, err := f.svc.AdminLogin(context.Background(), tc.in)
		require.Error(t, err, tc.name)
		assert.True(t, perr.IsCode(err, tc.code), tc.name)
	}
	assert.Equal(t, []string{ReasonUnknownEmail, ReasonNotAdmin, ReasonWrongPassword}, f.obs.failures)

	out, err := f.svc.AdminLogin(context.Background(), domain.LoginInput{Email: "ADMIN@example.com", Password: "Secret123"})
	require.NoError(t, err)
	assert.Equal(t, "tok-user-admin@example.com", out.Token)
}

func TestLogin_PrincipalCarriesVillageAndProfile(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.seed(t, entity.User{Email: "chief@example.com", Role: pnet.RoleVillageChief,
		Chief: &entity.ChiefUser{ID: "c1", VillageID: "v1"}}, "Secret123")
	f.seed(t, entity.User{Email: "res@example.com", Role: pnet.RoleResident,
		Resident: &entity.ResidentUser{ID: "r1", VillageID: "v2"}}, "Secret123")

	_, err := f.svc.Login(context.Background(), domain.LoginInput{Email: "chief@example.com", Password: "Secret123"})
	require.NoError(t, err)
	_, err = f.svc.Login(context.Background(), domain.LoginInput{Email: "res@example.com", Password: "Secret123"})
	require.NoError(t, err)

	require.Len(t, f.tokens.issued, 2)
	assert.Equal(t, pnet.Principal{UserID: "user-chief@example.com", Role: pnet.RoleVillageChief, VillageID: "v1", ProfileID: "c1"}, f.tokens.issued[0])
	assert.Equal(t, pnet.Principal{UserID: "user-res@example.com", Role: pnet.RoleResident, VillageID: "v2", ProfileID: "r1"}, f.tokens.issued[1])
}

func TestLogoutAndMe_RequirePrincipal(t *testing.T) {
	t.Parallel()
	f := newFixture()
	u := f.seed(t, entity.User{Email: "res@example.com", Role: pnet.RoleResident}, "Secret123")

	assert.True(t, perr.IsCode(f.svc.Logout(context.Background()), perr.ErrorCodeUnauthorized))
	_, err := f.svc.Me(context.Background())
	assert.True(t, perr.IsCode(err, perr.ErrorCodeUnauthorized))

	who := pnet.Principal{UserID: u.ID, Role: pnet.RoleResident, TokenID: "jti-1"}
	ctx := pnet.WithPrincipal(context.Background(), who)

	me, err := f.svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "res@example.com", me.Email)

	require.NoError(t, f.svc.Logout(ctx))
	assert.Equal(t, []pnet.Principal{who}, f.tokens.revoked)

	_, err = f.svc.Me(pnet.WithPrincipal(context.Background(), pnet.Principal{UserID: "gone", Role: pnet.RoleAdmin}))
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))
}

func TestCreate_HashesAndCounts(t *testing.T) {
	t.Parallel()
	f := newFixture()

	u, err := f.svc.Create(context.Background(), nil, domain.NewAccount{
		Firstname: "Jean", Surname: "Mugabo", Email: "JEAN@example.com", NID: "1199080012345679",
		Gender: "male", PhoneNumber: "+250788000222", Role: pnet.RoleVillageChief, Password: "Generated1!",
	})
	require.NoError(t, err)
	assert.Equal(t, "jean@example.com", u.Email)
	assert.Equal(t, "+250788000222", u.PhoneNumber)
	assert.NotEqual(t, "Generated1!", u.Password)
	assert.Equal(t, []string{pnet.RoleVillageChief}, f.obs.created)

	err = f.svc.CheckUnique(context.Background(), "jean@EXAMPLE.com", "1", "2")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeDuplicateKey))
	assert.NoError(t, f.svc.CheckUnique(context.Background(), "new@example.com", "1", "2"))
}
