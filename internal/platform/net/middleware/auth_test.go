package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "villagevisits/internal/platform/errors"
	pnet "villagevisits/internal/platform/net"
	"villagevisits/internal/platform/net/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type portFunc func(*http.Request) (pnet.Principal, error)

func (f portFunc) Parse(r *http.Request) (pnet.Principal, error) { return f(r) }

func serveAuth(p middleware.AuthPort, next http.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	middleware.Auth(p, pnet.WriteJSON)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestAuth_NilPortPassesThrough(t *testing.T) {
	rec := serveAuth(nil, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestAuth_RejectionWritesEnvelope(t *testing.T) {
	called := false
	rec := serveAuth(portFunc(func(*http.Request) (pnet.Principal, error) {
		return pnet.Principal{}, perr.Unauthorizedf("token expired")
	}), func(http.ResponseWriter, *http.Request) { called = true })

	assert.False(t, called)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var env pnet.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "token expired", env.Error)
	assert.Equal(t, perr.ErrorCodeUnauthorized, env.Code)
}

func TestAuth_PutsPrincipalOnContext(t *testing.T) {
	who := pnet.Principal{UserID: "u1", Role: pnet.RoleVillageChief, VillageID: "v1", ProfileID: "c1"}

	var seen pnet.Principal
	rec := serveAuth(portFunc(func(*http.Request) (pnet.Principal, error) { return who, nil }),
		func(w http.ResponseWriter, r *http.Request) {
			seen, _ = pnet.PrincipalFrom(r.Context())
		})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, who, seen)
}

func TestRecoverJSON(t *testing.T) {
	h := middleware.RequestID(middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil village")
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var env pnet.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, perr.ErrorCodePanic, env.Code)
	assert.Equal(t, "internal server error", env.Error)
	assert.NotEmpty(t, env.RequestID)
	assert.Equal(t, env.RequestID, rec.Header().Get("X-Request-Id"))
}

func TestRecoverJSON_AbortHandlerPropagates(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
