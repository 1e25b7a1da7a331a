package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "villagevisits/internal/platform/net/http"
	"villagevisits/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack, the zero value is usable
type StackOptions struct {
	Slow        time.Duration
	BodyLimit   int64
	CORSOrigins []string
	LogHeaders  []string
	Redact      []string
	Timeout     time.Duration
	Metrics     middleware.HTTPObserver
}

// CommonStack returns the baseline middleware slice for the API router
// compose with auth and scope middleware per route group
func CommonStack(opts ...StackOptions) []func(http.Handler) http.Handler {
	var o StackOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if len(o.Redact) == 0 {
		o.Redact = []string{"Authorization", "Cookie"}
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow, Headers: o.LogHeaders, Redact: o.Redact}),
		middleware.Metrics(o.Metrics),
		middleware.RecoverJSON,
		middleware.BodyLimit(o.BodyLimit),
		middleware.NoCache,
		middleware.CORS(o.CORSOrigins),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes,
		middleware.Timeout(o.Timeout),
	}
}

// Auth rejects requests p cannot parse with a JSON 401
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
