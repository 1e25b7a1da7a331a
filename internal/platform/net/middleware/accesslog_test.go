package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"villagevisits/internal/platform/logger"
	"villagevisits/internal/platform/net/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accessLine(t *testing.T, opt middleware.AccessLogOptions, h http.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: "debug", Format: "json", Writer: &buf})
	opt.Log = &log

	rec := httptest.NewRecorder()
	middleware.AccessLogZerolog(opt)(h).ServeHTTP(rec, req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	return rec, line
}

func TestAccessLog_PassesThroughAndCounts(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/villages", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0")
	rec, line := accessLine(t, middleware.AccessLogOptions{}, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "ok")
	}, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "request done", line["message"])
	assert.Equal(t, float64(201), line["status"])
	assert.Equal(t, float64(2), line["bytes"])
	assert.Equal(t, "/api/v1/villages", line["path"])
	assert.Equal(t, "192.0.2.1", line["client_ip"])
	assert.Contains(t, line["agent"], "Firefox")
	assert.NotContains(t, line, "headers")
}

func TestAccessLog_ImplicitOK(t *testing.T) {
	_, line := accessLine(t, middleware.AccessLogOptions{}, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "hi")
	}, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, float64(200), line["status"])
}

func TestAccessLog_Levels(t *testing.T) {
	cases := map[string]struct {
		status int
		opt    middleware.AccessLogOptions
		level  string
	}{
		"server error": {http.StatusBadGateway, middleware.AccessLogOptions{}, "error"},
		"client error": {http.StatusNotFound, middleware.AccessLogOptions{}, "warn"},
		"slow":         {http.StatusOK, middleware.AccessLogOptions{Slow: time.Nanosecond}, "warn"},
		"fast":         {http.StatusOK, middleware.AccessLogOptions{Slow: time.Hour}, "info"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, line := accessLine(t, tc.opt, func(w http.ResponseWriter, _ *http.Request) {
				time.Sleep(time.Microsecond)
				w.WriteHeader(tc.status)
			}, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tc.level, line["level"])
		})
	}
}

func TestAccessLog_RedactsHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("X-Village", "Kigali")
	opt := middleware.AccessLogOptions{Headers: []string{"Authorization", "X-Village", "X-Missing"}, Redact: []string{"authorization"}}

	_, line := accessLine(t, opt, func(w http.ResponseWriter, _ *http.Request) {}, req)
	assert.Equal(t, map[string]any{"Authorization": "[REDACTED]", "X-Village": "Kigali"}, line["headers"])
}
