package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	perr "villagevisits/internal/platform/errors"

	"golang.org/x/time/rate"
)

// RateLimitOptions configures the per client limiter
type RateLimitOptions struct {
	// PerMinute is the sustained request rate per client, <= 0 disables limiting
	PerMinute int
	// Burst defaults to PerMinute
	Burst int
	// Idle evicts clients unseen for this long, defaults to 10 minutes
	Idle time.Duration
	// OnLimited is called for every rejected request
	OnLimited func(r *http.Request)
}

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter keeps a token bucket per client ip
type RateLimiter struct {
	opt RateLimitOptions
	mu  sync.Mutex
	all map[string]*visitor
	now func() time.Time
}

// NewRateLimiter builds a limiter from opt
func NewRateLimiter(opt RateLimitOptions) *RateLimiter {
	if opt.Burst <= 0 {
		opt.Burst = opt.PerMinute
	}
	if opt.Idle <= 0 {
		opt.Idle = 10 * time.Minute
	}
	return &RateLimiter{opt: opt, all: map[string]*visitor{}, now: time.Now}
}

// Allow reports whether key may proceed now
func (l *RateLimiter) Allow(key string) bool {
	if l.opt.PerMinute <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.all[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.opt.PerMinute)), l.opt.Burst)}
		l.all[key] = v
	}
	v.seen = now
	l.sweep(now)
	return v.lim.AllowN(now, 1)
}

// sweep drops idle clients, caller holds mu
func (l *RateLimiter) sweep(now time.Time) {
	if len(l.all) < 1024 {
		return
	}
	for k, v := range l.all {
		if now.Sub(v.seen) > l.opt.Idle {
			delete(l.all, k)
		}
	}
}

// Handler rejects over-limit clients with 429 and a Retry-After header
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.Allow(hostOnly(r.RemoteAddr)) {
			next.ServeHTTP(w, r)
			return
		}
		if l.opt.OnLimited != nil {
			l.opt.OnLimited(r)
		}
		retry := time.Minute / time.Duration(l.opt.PerMinute)
		w.Header().Set("Retry-After", strconv.Itoa(max(1, int(retry.Seconds()))))
		writeError(w, r, perr.TooManyRequestsf("too many requests, try again later"))
	})
}

// RateLimit is a shorthand for NewRateLimiter(opt).Handler
func RateLimit(opt RateLimitOptions) func(http.Handler) http.Handler {
	return NewRateLimiter(opt).Handler
}
