package httpkit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"villagevisits/internal/modkit/scope"
	pnet "villagevisits/internal/platform/net"
	phttp "villagevisits/internal/platform/net/http"
)

type authzFunc func(role, resource, action string) (bool, error)

func (f authzFunc) Allow(role, resource, action string) (bool, error) { return f(role, resource, action) }

func TestRequire(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	a := authzFunc(func(role, resource, action string) (bool, error) {
		if role == "broken" {
			return false, errors.New("enforcer down")
		}
		return role == pnet.RoleAdmin && resource == "villages" && action == "create", nil
	})
	h := Require(a, "villages", "create")(ok)

	serve := func(who *pnet.Principal) int {
		req := httptest.NewRequest(http.MethodPost, "/villages", nil)
		if who != nil {
			req = req.WithContext(pnet.WithPrincipal(context.Background(), *who))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(nil))
	assert.Equal(t, http.StatusForbidden, serve(&pnet.Principal{UserID: "u", Role: pnet.RoleResident}))
	assert.Equal(t, http.StatusNoContent, serve(&pnet.Principal{UserID: "u", Role: pnet.RoleAdmin}))
	assert.Equal(t, http.StatusInternalServerError, serve(&pnet.Principal{UserID: "u", Role: "broken"}))
}

func TestRoles(t *testing.T) {
	rs := Roles{pnet.RoleAdmin, pnet.RoleVillageChief}
	ok, _ := rs.Allow(pnet.RoleVillageChief, "", "")
	assert.True(t, ok)
	ok, _ = rs.Allow(pnet.RoleResident, "", "")
	assert.False(t, ok)
}

func TestGate_AndProtectedScope(t *testing.T) {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	port := NewPortFunc(func(_ context.Context, token string) (pnet.Principal, error) {
		switch token {
		case "chief":
			return pnet.Principal{UserID: "u1", Role: pnet.RoleVillageChief, VillageID: "v1"}, nil
		case "resident":
			return pnet.Principal{UserID: "u2", Role: pnet.RoleResident, VillageID: "v1", ProfileID: "r1"}, nil
		}
		return pnet.Principal{}, errors.New("bad")
	})

	var seen scope.Scope
	Protected(r, port, func(pr Router) {
		Gate(pr, Roles{pnet.RoleVillageChief}, "residents", "list", func(g Router) {
			g.Get("/residents", func(w http.ResponseWriter, req *http.Request) {
				seen = scope.From(req.Context())
				w.WriteHeader(http.StatusOK)
			})
		})
	})

	serve := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/residents", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(""))
	assert.Equal(t, http.StatusUnauthorized, serve("nope"))
	assert.Equal(t, http.StatusForbidden, serve("resident"))
	assert.Equal(t, http.StatusOK, serve("chief"))
	assert.Equal(t, "v1", seen.VillageID)
	assert.False(t, seen.All)
}
