package service

import (
	"context"
	"sync"
	"testing"

	"villagevisits/internal/core/autoquery"
	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	perr "villagevisits/internal/platform/errors"
	"villagevisits/internal/platform/events"
	"villagevisits/internal/platform/mail"
	pnet "villagevisits/internal/platform/net"
	authdom "villagevisits/internal/services/api/auth/domain"
	"villagevisits/internal/services/api/chiefs/domain"
	"villagevisits/internal/services/api/chiefs/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const villageID = "0b7e8c4e-63c5-4b57-9a55-4d2f3c0f9e11"

type fakeVillages struct{}

func (fakeVillages) Get(_ context.Context, id string) (*entity.Village, error) {
	if id != villageID {
		return nil, perr.NotFoundf("village not found")
	}
	return &entity.Village{ID: id, Village: "Amahoro"}, nil
}

type fakeAccounts struct {
	mu      sync.Mutex
	taken   bool
	created []authdom.NewAccount
}

func (f *fakeAccounts) CheckUnique(context.Context, string, string, string) error {
	if f.taken {
		return perr.DuplicateKeyf("user already exists")
	}
	return nil
}

func (f *fakeAccounts) Create(_ context.Context, _ *gorm.DB, a authdom.NewAccount) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, a)
	return &entity.User{ID: "u1", Firstname: a.Firstname, Email: a.Email, Role: a.Role}, nil
}

type fakeRepo struct {
	rows      []*entity.ChiefUser
	createErr error
	lastList  repokit.ListQuery
}

func (f *fakeRepo) Create(_ context.Context, c *entity.ChiefUser) error {
	if f.createErr != nil {
		return f.createErr
	}
	c.ID = "c1"
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeRepo) List(_ context.Context, q repokit.ListQuery) ([]entity.ChiefUser, int64, error) {
	f.lastList = q
	out := make([]entity.ChiefUser, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type outbox struct{ sent []mail.Message }

func (o *outbox) Dispatch(m mail.Message) { o.sent = append(o.sent, m) }

type fixture struct {
	svc      *Svc
	repo     *fakeRepo
	accounts *fakeAccounts
	mail     *outbox
	events   *events.Memory
}

func newFixture() fixture {
	f := fixture{repo: &fakeRepo{}, accounts: &fakeAccounts{}, mail: &outbox{}, events: &events.Memory{}}
	b := repokit.ORMBindFunc[repo.Repo](func(*gorm.DB) repo.Repo { return f.repo })
	f.svc = New(repokit.NoTx{}, b, Collaborators{
		Accounts: f.accounts,
		Villages: fakeVillages{},
		Mail:     f.mail,
		Events:   f.events,
	})
	return f
}

func input() domain.ChiefInput {
	return domain.ChiefInput{
		Firstname: "Eric", Surname: "Habimana", Email: "eric@example.com", NID: "1198580012345678",
		Gender: "male", PhoneNumber: "250788000222", VillageID: villageID, Username: " ehabimana ",
		DateOfBirth: "1985-04-12", Nationality: "rwandan", Profession: "nurse",
	}
}

func TestCreate_RegistersMailsAndPublishes(t *testing.T) {
	t.Parallel()
	f := newFixture()

	c, err := f.svc.Create(context.Background(), input())
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, villageID, c.VillageID)
	assert.Equal(t, "ehabimana", c.Username)
	assert.Equal(t, 1985, c.DateOfBirth.Year())
	require.NotNil(t, c.User)
	require.NotNil(t, c.Village)

	require.Len(t, f.accounts.created, 1)
	acct := f.accounts.created[0]
	assert.Equal(t, pnet.RoleVillageChief, acct.Role)
	assert.Len(t, acct.Password, PasswordLength)

	require.Len(t, f.mail.sent, 1)
	msg := f.mail.sent[0]
	assert.Equal(t, mail.AccountCreated, msg.Template)
	assert.Equal(t, "eric@example.com", msg.To)
	assert.Equal(t, acct.Password, msg.Data.Password, "the mailed password is the one the account was created with")
	assert.Equal(t, "Amahoro", msg.Data.Village)

	evs := f.events.OfType(events.ChiefCreated)
	require.Len(t, evs, 1)
	assert.Equal(t, villageID, evs[0].VillageID)
}

func TestCreate_MissingVillageIsBadRequest(t *testing.T) {
	t.Parallel()
	f := newFixture()
	in := input()
	in.VillageID = "1b7e8c4e-63c5-4b57-9a55-4d2f3c0f9e11"

	_, err := f.svc.Create(context.Background(), in)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
	assert.Empty(t, f.accounts.created)
	assert.Empty(t, f.mail.sent)
}

func TestCreate_Duplicates(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.accounts.taken = true
	_, err := f.svc.Create(context.Background(), input())
	assert.True(t, perr.IsCode(err, perr.ErrorCodeDuplicateKey))

	f = newFixture()
	f.repo.createErr = gorm.ErrDuplicatedKey
	_, err = f.svc.Create(context.Background(), input())
	require.True(t, perr.IsCode(err, perr.ErrorCodeDuplicateKey))
	assert.Contains(t, err.Error(), "username already taken")
	assert.Empty(t, f.mail.sent, "nothing is mailed when the transaction fails")
	assert.Empty(t, f.events.Events())
}

func TestCreate_BadDate(t *testing.T) {
	t.Parallel()
	f := newFixture()
	in := input()
	in.DateOfBirth = "1985-13-40"
	_, err := f.svc.Create(context.Background(), in)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
}

func TestList_PreloadsUserAndVillage(t *testing.T) {
	t.Parallel()
	f := newFixture()
	_, err := f.svc.Create(context.Background(), input())
	require.NoError(t, err)

	env, err := f.svc.List(context.Background(), httpkit.ListRequest{
		Query: autoquery.Query{"username.like": "hab"},
		Page:  pagination.Parse("1", "10"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), env.TotalItems)
	assert.Equal(t, []string{"User", "Village"}, f.repo.lastList.Preloads)
	assert.Len(t, f.repo.lastList.Plan.Where.And, 1)
}

func TestNew_RequiresPorts(t *testing.T) {
	t.Parallel()
	b := repokit.ORMBindFunc[repo.Repo](func(*gorm.DB) repo.Repo { return &fakeRepo{} })
	assert.Panics(t, func() { New(repokit.NoTx{}, b, Collaborators{}) })
	assert.NotPanics(t, func() {
		New(repokit.NoTx{}, b, Collaborators{Accounts: &fakeAccounts{}, Villages: fakeVillages{}})
	})
}
