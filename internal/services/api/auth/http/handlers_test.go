package http

import (
	"context"
	stdhttp "net/http"
	"testing"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/modkit/httpkit/httpkittest"
	"villagevisits/internal/platform/auth"
	perr "villagevisits/internal/platform/errors"
	pnet "villagevisits/internal/platform/net"
	phttp "villagevisits/internal/platform/net/http"
	"villagevisits/internal/platform/net/middleware"
	"villagevisits/internal/services/api/auth/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSvc struct {
	signups  []domain.AdminSignupInput
	loggedIn []pnet.Principal
	loginErr error
}

func (f *fakeSvc) AdminSignup(_ context.Context, in domain.AdminSignupInput) (domain.AdminSession, error) {
	f.signups = append(f.signups, in)
	return domain.AdminSession{AdminUser: &entity.User{ID: "u1", Email: in.Email, Password: "hash"}, Token: "t"}, nil
}

func (f *fakeSvc) AdminLogin(context.Context, domain.LoginInput) (domain.Session, error) {
	return domain.Session{}, perr.NotFoundf("email not registered")
}

func (f *fakeSvc) Login(_ context.Context, in domain.LoginInput) (domain.Session, error) {
	if f.loginErr != nil {
		return domain.Session{}, f.loginErr
	}
	return domain.Session{User: &entity.User{ID: "u2", Email: in.Email}, Token: "t2"}, nil
}

func (f *fakeSvc) Logout(ctx context.Context) error {
	who, _ := pnet.PrincipalFrom(ctx)
	f.loggedIn = append(f.loggedIn, who)
	return nil
}

func (f *fakeSvc) Me(ctx context.Context) (*entity.User, error) {
	who, _ := pnet.PrincipalFrom(ctx)
	return &entity.User{ID: who.UserID, Role: who.Role}, nil
}

func (f *fakeSvc) CheckUnique(context.Context, string, string, string) error { return nil }

func (f *fakeSvc) Create(context.Context, *gorm.DB, domain.NewAccount) (*entity.User, error) {
	return nil, nil
}

func mount(t *testing.T, s *fakeSvc, limit func(stdhttp.Handler) stdhttp.Handler) stdhttp.Handler {
	t.Helper()
	policy, err := auth.NewPolicy()
	require.NoError(t, err)
	return httpkittest.Router(func(r phttp.Router) {
		Register(r, s, Options{Auth: httpkittest.Tokens(), Authz: policy, LoginLimit: limit})
	})
}

func validSignup() map[string]any {
	return map[string]any{
		"firstname": "Aline", "surname": "Uwase", "email": "aline@example.com",
		"NID": "1199080012345678", "gender": "female", "phoneNumber": "250788000111",
		"password": "Secret123", "position": "officer", "role": "resident",
	}
}

func TestAdminSignup_CreatedWithoutPassword(t *testing.T) {
	t.Parallel()
	s := &fakeSvc{}
	h := mount(t, s, nil)

	rec := httpkittest.Do(t, h, stdhttp.MethodPost, "/admin/signup", "", validSignup())
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "hash")

	var out struct {
		AdminUser struct{ ID, Email string } `json:"adminUser"`
		Token     string                     `json:"token"`
	}
	httpkittest.Decode(t, rec, &out)
	assert.Equal(t, "u1", out.AdminUser.ID)
	assert.Equal(t, "t", out.Token)
	require.Len(t, s.signups, 1)
}

func TestAdminSignup_ValidationDetails(t *testing.T) {
	t.Parallel()
	s := &fakeSvc{}
	h := mount(t, s, nil)

	body := validSignup()
	body["NID"] = "123"
	body["password"] = "weak"
	body["gender"] = "robot"

	rec := httpkittest.Do(t, h, stdhttp.MethodPost, "/admin/signup", "", body)
	assert.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)

	env := httpkittest.Decode(t, rec, nil)
	fields := map[string]bool{}
	for _, fe := range env.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["NID"])
	assert.True(t, fields["password"])
	assert.True(t, fields["gender"])
	assert.Empty(t, s.signups)
}

func TestAdminLogin_NotFound(t *testing.T) {
	t.Parallel()
	h := mount(t, &fakeSvc{}, nil)
	rec := httpkittest.Do(t, h, stdhttp.MethodPost, "/admin/login", "", map[string]string{"email": "x@example.com", "password": "p"})
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
}

func TestUsersLogin_MalformedJSON(t *testing.T) {
	t.Parallel()
	h := mount(t, &fakeSvc{}, nil)
	rec := httpkittest.Do(t, h, stdhttp.MethodPost, "/users/login", "", `{"email":`)
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}

func TestUsersLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	h := mount(t, &fakeSvc{loginErr: perr.InvalidArgf("incorrect email or password")}, nil)
	rec := httpkittest.Do(t, h, stdhttp.MethodPost, "/users/login", "", map[string]string{"email": "x@example.com", "password": "p"})
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "incorrect email or password")
}

func TestMeAndLogout_RequireToken(t *testing.T) {
	t.Parallel()
	s := &fakeSvc{}
	h := mount(t, s, nil)

	assert.Equal(t, stdhttp.StatusUnauthorized, httpkittest.Do(t, h, stdhttp.MethodGet, "/users/me", "", nil).Code)
	assert.Equal(t, stdhttp.StatusUnauthorized, httpkittest.Do(t, h, stdhttp.MethodPost, "/users/logout", "bogus", nil).Code)

	for _, tok := range []string{"admin", "chief", "resident"} {
		rec := httpkittest.Do(t, h, stdhttp.MethodGet, "/users/me", tok, nil)
		require.Equal(t, stdhttp.StatusOK, rec.Code, tok)
		var u struct{ ID, Role string }
		httpkittest.Decode(t, rec, &u)
		assert.Equal(t, httpkittest.Tokens()[tok].UserID, u.ID)
	}

	rec := httpkittest.Do(t, h, stdhttp.MethodPost, "/users/logout", "chief", nil)
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, []pnet.Principal{httpkittest.Chief}, s.loggedIn)
}

func TestLogin_RateLimited(t *testing.T) {
	t.Parallel()
	limited := 0
	limit := middleware.RateLimit(middleware.RateLimitOptions{
		PerMinute: 1,
		Burst:     1,
		OnLimited: func(*stdhttp.Request) { limited++ },
	})
	h := mount(t, &fakeSvc{}, limit)
	body := map[string]string{"email": "x@example.com", "password": "p"}

	assert.Equal(t, stdhttp.StatusOK, httpkittest.Do(t, h, stdhttp.MethodPost, "/users/login", "", body).Code)
	assert.Equal(t, stdhttp.StatusTooManyRequests, httpkittest.Do(t, h, stdhttp.MethodPost, "/users/login", "", body).Code)
	assert.Equal(t, 1, limited)

	// the protected routes are outside the throttle
	assert.Equal(t, stdhttp.StatusOK, httpkittest.Do(t, h, stdhttp.MethodGet, "/users/me", "admin", nil).Code)
}
