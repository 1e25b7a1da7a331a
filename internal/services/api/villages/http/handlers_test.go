package http

import (
	"context"
	stdhttp "net/http"
	"testing"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/httpkit/httpkittest"
	"villagevisits/internal/platform/auth"
	perr "villagevisits/internal/platform/errors"
	phttp "villagevisits/internal/platform/net/http"
	"villagevisits/internal/services/api/villages/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knownID = "0b7e8c4e-63c5-4b57-9a55-4d2f3c0f9e11"

type fakeSvc struct {
	lastList httpkit.ListRequest
	deleted  []string
}

func (f *fakeSvc) Create(_ context.Context, in domain.VillageInput) (*entity.Village, error) {
	if in.Village == "Taken" {
		return nil, perr.DuplicateKeyf("village already exists")
	}
	return &entity.Village{ID: knownID, Village: in.Village}, nil
}

func (f *fakeSvc) List(_ context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.Village], error) {
	f.lastList = req
	return pagination.New(req.Page, 1, []entity.Village{{ID: knownID}}), nil
}

func (f *fakeSvc) Get(_ context.Context, id string) (*entity.Village, error) {
	if id != knownID {
		return nil, perr.NotFoundf("village not found")
	}
	return &entity.Village{ID: id}, nil
}

func (f *fakeSvc) Update(_ context.Context, id string, in domain.VillageInput) (*entity.Village, error) {
	return &entity.Village{ID: id, Village: in.Village}, nil
}

func (f *fakeSvc) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func mount(t *testing.T, s *fakeSvc) stdhttp.Handler {
	t.Helper()
	policy, err := auth.NewPolicy()
	require.NoError(t, err)
	return httpkittest.Router(func(r phttp.Router) {
		r.Route("/villages", func(vr phttp.Router) { Register(vr, s, httpkittest.Tokens(), policy) })
	})
}

func body(village string) domain.VillageInput {
	return domain.VillageInput{Province: "Kigali", District: "Gasabo", Sector: "Kacyiru", Cell: "Kamatamu", Village: village, AboutVillage: "about"}
}

func TestVillages_AdminOnly(t *testing.T) {
	t.Parallel()
	h := mount(t, &fakeSvc{})

	assert.Equal(t, stdhttp.StatusUnauthorized, httpkittest.Do(t, h, stdhttp.MethodGet, "/villages", "", nil).Code)
	assert.Equal(t, stdhttp.StatusForbidden, httpkittest.Do(t, h, stdhttp.MethodGet, "/villages", "chief", nil).Code)
	assert.Equal(t, stdhttp.StatusForbidden, httpkittest.Do(t, h, stdhttp.MethodPost, "/villages", "resident", body("Amahoro")).Code)
	assert.Equal(t, stdhttp.StatusOK, httpkittest.Do(t, h, stdhttp.MethodGet, "/villages", "admin", nil).Code)
}

func TestVillages_CreateAndConflict(t *testing.T) {
	t.Parallel()
	h := mount(t, &fakeSvc{})

	rec := httpkittest.Do(t, h, stdhttp.MethodPost, "/villages", "admin", body("Amahoro"))
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	var v entity.Village
	httpkittest.Decode(t, rec, &v)
	assert.Equal(t, knownID, v.ID)

	assert.Equal(t, stdhttp.StatusConflict, httpkittest.Do(t, h, stdhttp.MethodPost, "/villages", "admin", body("Taken")).Code)

	missing := body("Amahoro")
	missing.Cell = ""
	assert.Equal(t, stdhttp.StatusUnprocessableEntity, httpkittest.Do(t, h, stdhttp.MethodPost, "/villages", "admin", missing).Code)
}

func TestVillages_ListPassesQueryAndPage(t *testing.T) {
	t.Parallel()
	s := &fakeSvc{}
	h := mount(t, s)

	rec := httpkittest.Do(t, h, stdhttp.MethodGet, "/villages?page=2&count=5&village.like=ama&sort=cell%20desc", "admin", nil)
	require.Equal(t, stdhttp.StatusOK, rec.Code)

	assert.Equal(t, "ama", s.lastList.Query["village.like"])
	assert.Equal(t, "cell desc", s.lastList.Query["sort"])
	assert.Equal(t, 2, s.lastList.Page.Page)
	assert.Equal(t, 5, s.lastList.Page.Size)
	assert.True(t, s.lastList.Scope.All)

	var env pagination.Envelope[entity.Village]
	httpkittest.Decode(t, rec, &env)
	assert.Equal(t, 2, env.Page)
	assert.Len(t, env.Items, 1)
}

func TestVillages_DetailRoutes(t *testing.T) {
	t.Parallel()
	s := &fakeSvc{}
	h := mount(t, s)

	assert.Equal(t, stdhttp.StatusBadRequest, httpkittest.Do(t, h, stdhttp.MethodGet, "/villages/not-a-uuid", "admin", nil).Code)
	assert.Equal(t, stdhttp.StatusNotFound, httpkittest.Do(t, h, stdhttp.MethodGet, "/villages/1b7e8c4e-63c5-4b57-9a55-4d2f3c0f9e11", "admin", nil).Code)
	assert.Equal(t, stdhttp.StatusOK, httpkittest.Do(t, h, stdhttp.MethodGet, "/villages/"+knownID, "admin", nil).Code)

	rec := httpkittest.Do(t, h, stdhttp.MethodPatch, "/villages/"+knownID, "admin", body("Urukundo"))
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var v entity.Village
	httpkittest.Decode(t, rec, &v)
	assert.Equal(t, "Urukundo", v.Village)

	require.Equal(t, stdhttp.StatusOK, httpkittest.Do(t, h, stdhttp.MethodDelete, "/villages/"+knownID, "admin", nil).Code)
	assert.Equal(t, []string{knownID}, s.deleted)
}
