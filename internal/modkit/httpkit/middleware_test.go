package httpkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wrap(h http.Handler, stack []func(http.Handler) http.Handler) http.Handler {
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}
	return h
}

func TestCommonStack_ReachesHandler(t *testing.T) {
	hits := 0
	root := wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNoContent)
	}), CommonStack())

	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping/", nil))

	assert.Equal(t, 1, hits)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Cache-Control"))
}

func TestCommonStack_BodyLimit(t *testing.T) {
	root := wrap(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), CommonStack(StackOptions{BodyLimit: 4}))

	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/visits", strings.NewReader("too long")))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "request_id")
}

type countingObserver struct{ n int }

func (c *countingObserver) ObserveHTTP(string, string, int, time.Duration) { c.n++ }

func TestCommonStack_ReportsMetrics(t *testing.T) {
	obs := &countingObserver{}
	root := wrap(http.NotFoundHandler(), CommonStack(StackOptions{Metrics: obs}))

	root.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, 1, obs.n)
}

func TestCommonStack_RecoversPanics(t *testing.T) {
	root := wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }), CommonStack())

	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
