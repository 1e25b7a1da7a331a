// Package middleware holds the in house middlewares and the chi ones the api stacks
package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"villagevisits/internal/platform/logger"
	pnet "villagevisits/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mssola/useragent"
	"github.com/rs/zerolog"
)

// AccessLogOptions zero value logs every request at info or above
type AccessLogOptions struct {
	Slow    time.Duration // warn at or past this, 0 never
	Headers []string      // logged by name when present
	Redact  []string      // header values replaced, case insensitive
	Log     *logger.Logger
}

// AccessLogZerolog writes one "request done" line per request: error for 5xx,
// warn for 4xx and slow requests, info otherwise
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	redact := make(map[string]bool, len(opt.Redact))
	for _, h := range opt.Redact {
		redact[http.CanonicalHeaderKey(h)] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), "")
			next.ServeHTTP(ww, r.WithContext(ctx))

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log := opt.Log
			if log == nil {
				log = logger.C(ctx)
			}
			ua := useragent.New(r.UserAgent())
			browser, version := ua.Browser()

			evt := eventFor(log, status, opt.Slow > 0 && elapsed >= opt.Slow).
				Str("request_id", pnet.RequestID(ctx)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Str("client_ip", hostOnly(r.RemoteAddr)).
				Str("agent", strings.TrimSpace(browser+" "+version)).
				Str("os", ua.OS()).
				Bool("bot", ua.Bot())
			if hd := headerDict(r.Header, opt.Headers, redact); hd != nil {
				evt = evt.Dict("headers", hd)
			}
			evt.Msg("request done")
		})
	}
}

func eventFor(log *logger.Logger, status int, slow bool) *zerolog.Event {
	if status >= http.StatusInternalServerError {
		return log.Error()
	}
	if status >= http.StatusBadRequest || slow {
		return log.Warn()
	}
	return log.Info()
}

func headerDict(h http.Header, names []string, redact map[string]bool) *zerolog.Event {
	var d *zerolog.Event
	for _, name := range names {
		v := h.Get(name)
		if v == "" {
			continue
		}
		if d == nil {
			d = zerolog.Dict()
		}
		if redact[http.CanonicalHeaderKey(name)] {
			v = "[REDACTED]"
		}
		d = d.Str(name, v)
	}
	return d
}

func hostOnly(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
