// Package httpkittest drives module routes in handler tests
package httpkittest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"villagevisits/internal/core/pagination"
	perr "villagevisits/internal/platform/errors"
	pnet "villagevisits/internal/platform/net"
	phttp "villagevisits/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Principals is an AuthPort keyed by raw bearer token
type Principals map[string]pnet.Principal

// Parse implements middleware.AuthPort
func (p Principals) Parse(r *http.Request) (pnet.Principal, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))
	if raw == "" {
		return pnet.Principal{}, perr.Unauthorizedf("missing bearer token")
	}
	who, ok := p[raw]
	if !ok {
		return pnet.Principal{}, perr.Unauthorizedf("invalid bearer token")
	}
	return who, nil
}

// Standard callers, one per role
var (
	Admin    = pnet.Principal{UserID: "11111111-1111-1111-1111-111111111111", Role: pnet.RoleAdmin, ProfileID: "a1"}
	Chief    = pnet.Principal{UserID: "22222222-2222-2222-2222-222222222222", Role: pnet.RoleVillageChief, VillageID: "99999999-9999-9999-9999-999999999999", ProfileID: "c1"}
	Resident = pnet.Principal{UserID: "33333333-3333-3333-3333-333333333333", Role: pnet.RoleResident, VillageID: "99999999-9999-9999-9999-999999999999", ProfileID: "44444444-4444-4444-4444-444444444444"}
)

// Tokens maps the tokens "admin", "chief" and "resident" to the standard callers
func Tokens() Principals {
	return Principals{"admin": Admin, "chief": Chief, "resident": Resident}
}

// Router mounts routes the way the API group does, with request ids and pagination
func Router(mount func(phttp.Router)) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(chimw.RequestID, pagination.Middleware())
	mount(phttp.AdaptChi(mux))
	return mux
}

// Do sends one request, body may be nil, a string or a value to marshal
func Do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	case []byte:
		rd = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Envelope is the decoded response wrapper with data left raw
type Envelope struct {
	StatusCode int               `json:"status_code"`
	Status     string            `json:"status"`
	Error      string            `json:"error"`
	Data       json.RawMessage   `json:"data"`
	Errors     []perr.FieldError `json:"errors"`
}

// Decode parses the envelope and, when out is non nil, its data
func Decode(t *testing.T, rec *httptest.ResponseRecorder, out any) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope %q: %v", rec.Body.String(), err)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data %s: %v", env.Data, err)
		}
	}
	return env
}
