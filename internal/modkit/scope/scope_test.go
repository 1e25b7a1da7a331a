package scope

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	pnet "villagevisits/internal/platform/net"
)

func TestFor(t *testing.T) {
	cases := []struct {
		name string
		who  pnet.Principal
		want Scope
	}{
		{"admin", pnet.Principal{UserID: "u", Role: pnet.RoleAdmin}, Scope{All: true}},
		{"chief", pnet.Principal{UserID: "u", Role: pnet.RoleVillageChief, VillageID: "v"}, Scope{VillageID: "v"}},
		{"resident", pnet.Principal{UserID: "u", Role: pnet.RoleResident, VillageID: "v", ProfileID: "r"}, Scope{VillageID: "v", ResidentID: "r"}},
		{"chief without village", pnet.Principal{UserID: "u", Role: pnet.RoleVillageChief}, None},
		{"resident without profile", pnet.Principal{UserID: "u", Role: pnet.RoleResident, VillageID: "v"}, None},
		{"unknown role", pnet.Principal{UserID: "u", Role: "ghost"}, None},
		{"anonymous", pnet.Principal{}, None},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, For(c.who))
		})
	}
}

func TestOwns(t *testing.T) {
	assert.True(t, Scope{All: true}.Owns("any"))
	assert.True(t, Scope{VillageID: "v"}.Owns("v"))
	assert.False(t, Scope{VillageID: "v"}.Owns("w"))
	assert.False(t, Scope{}.Owns(""))
	assert.False(t, None.Owns("v"))
}

func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost dbname=x"}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

type visit struct{ ID string }

func sqlOf(t *testing.T, s Scope, cols Columns) string {
	db := dryRun(t)
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []visit
		return tx.Table("visits").Scopes(s.Apply(cols)).Find(&out)
	})
}

func TestApply(t *testing.T) {
	all := sqlOf(t, Scope{All: true}, ResidentBound)
	assert.NotContains(t, all, "WHERE")

	chief := sqlOf(t, Scope{VillageID: "v-1"}, ResidentBound)
	assert.Contains(t, chief, `"villageId" = 'v-1'`)
	assert.NotContains(t, chief, "residentUserId")

	res := sqlOf(t, Scope{VillageID: "v-1", ResidentID: "r-1"}, ResidentBound)
	assert.Contains(t, res, `"villageId" = 'v-1'`)
	assert.Contains(t, res, `"residentUserId" = 'r-1'`)

	unbound := sqlOf(t, Scope{VillageID: "v-1"}, Columns{})
	assert.NotContains(t, unbound, "WHERE")

	none := sqlOf(t, None, VillageBound)
	assert.Contains(t, none, "1 = 0")
}

func TestMiddleware_ResolvesFromPrincipal(t *testing.T) {
	var got Scope
	h := Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = From(r.Context())
	}))

	ctx := pnet.WithPrincipal(context.Background(), pnet.Principal{UserID: "u", Role: pnet.RoleVillageChief, VillageID: "v"})
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	assert.Equal(t, Scope{VillageID: "v"}, got)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, got.IsNone())
}

func TestFrom_DefaultsToNone(t *testing.T) {
	assert.True(t, From(context.Background()).IsNone())
	ctx := With(context.Background(), Scope{All: true})
	assert.True(t, From(ctx).All)
}
