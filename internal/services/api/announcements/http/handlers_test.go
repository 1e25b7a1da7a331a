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
	"villagevisits/internal/services/api/announcements/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knownID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

type fakeSvc struct{ deleted []string }

func (f *fakeSvc) Create(_ context.Context, in domain.AnnouncementInput) (domain.Posted, error) {
	return domain.Posted{
		Announcement: &entity.Announcement{ID: knownID, Title: in.Title},
		CreatedBy:    &entity.User{ID: httpkittest.Chief.UserID},
	}, nil
}

func (f *fakeSvc) List(_ context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.Announcement], error) {
	return pagination.New(req.Page, 0, []entity.Announcement{}), nil
}

func (f *fakeSvc) Get(_ context.Context, id string) (*entity.Announcement, error) {
	if id != knownID {
		return nil, perr.NotFoundf("announcement not found")
	}
	return &entity.Announcement{ID: id}, nil
}

func (f *fakeSvc) Delete(_ context.Context, id string) error {
	if id != knownID {
		return perr.NotFoundf("announcement not found")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func mount(t *testing.T, s *fakeSvc) stdhttp.Handler {
	t.Helper()
	policy, err := auth.NewPolicy()
	require.NoError(t, err)
	return httpkittest.Router(func(r phttp.Router) {
		r.Route("/announcements", func(ar phttp.Router) { Register(ar, s, httpkittest.Tokens(), policy) })
	})
}

func TestAnnouncements_CreateShape(t *testing.T) {
	t.Parallel()
	h := mount(t, &fakeSvc{})
	in := domain.AnnouncementInput{Title: "Umuganda", Description: "Saturday"}

	assert.Equal(t, stdhttp.StatusForbidden, httpkittest.Do(t, h, stdhttp.MethodPost, "/announcements", "resident", in).Code)

	rec := httpkittest.Do(t, h, stdhttp.MethodPost, "/announcements", "chief", in)
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	var p domain.Posted
	httpkittest.Decode(t, rec, &p)
	require.NotNil(t, p.Announcement)
	require.NotNil(t, p.CreatedBy)
	assert.Equal(t, "Umuganda", p.Announcement.Title)
	assert.Equal(t, httpkittest.Chief.UserID, p.CreatedBy.ID)
}

func TestAnnouncements_ReadAndDelete(t *testing.T) {
	t.Parallel()
	s := &fakeSvc{}
	h := mount(t, s)

	assert.Equal(t, stdhttp.StatusForbidden, httpkittest.Do(t, h, stdhttp.MethodGet, "/announcements", "admin", nil).Code)
	assert.Equal(t, stdhttp.StatusOK, httpkittest.Do(t, h, stdhttp.MethodGet, "/announcements", "resident", nil).Code)
	assert.Equal(t, stdhttp.StatusOK, httpkittest.Do(t, h, stdhttp.MethodGet, "/announcements/"+knownID, "resident", nil).Code)
	assert.Equal(t, stdhttp.StatusNotFound, httpkittest.Do(t, h, stdhttp.MethodGet, "/announcements/6c9e6679-7425-40de-944b-e07fc1f90ae7", "chief", nil).Code)

	assert.Equal(t, stdhttp.StatusForbidden, httpkittest.Do(t, h, stdhttp.MethodDelete, "/announcements/"+knownID, "resident", nil).Code)
	require.Equal(t, stdhttp.StatusOK, httpkittest.Do(t, h, stdhttp.MethodDelete, "/announcements/"+knownID, "chief", nil).Code)
	assert.Equal(t, []string{knownID}, s.deleted)
}
