// Package metrics holds the Prometheus collectors for the API
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "villagevisits"

// Metrics holds all Prometheus metrics for the application
// A nil *Metrics is valid and records nothing
type Metrics struct {
	reg *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	UsersCreated    *prometheus.CounterVec
	VisitsCreated   prometheus.Counter
	VisitorsCreated prometheus.Counter
	LoginFailures   *prometheus.CounterVec
	RateLimited     prometheus.Counter
	MailsSent       *prometheus.CounterVec
	EventsPublished *prometheus.CounterVec
}

// New creates a private registry and registers all collectors on it
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UsersCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_created_total",
			Help:      "Users created by role",
		}, []string{"role"}),
		VisitsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visits_created_total",
			Help:      "Visits recorded",
		}),
		VisitorsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visitors_created_total",
			Help:      "Visitors registered while recording a visit",
		}),
		LoginFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_failures_total",
			Help:      "Rejected logins by reason",
		}, []string{"reason"}),
		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}),
		MailsSent: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mails_sent_total",
			Help:      "Outgoing mails by template and result",
		}, []string{"template", "result"}),
		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Domain events by type and result",
		}, []string{"type", "result"}),
	}
}

// Registry exposes the underlying registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObserveHTTP records one finished request
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncUsersCreated counts a new account
func (m *Metrics) IncUsersCreated(role string) {
	if m != nil {
		m.UsersCreated.WithLabelValues(role).Inc()
	}
}

// IncVisitsCreated counts a recorded visit
func (m *Metrics) IncVisitsCreated() {
	if m != nil {
		m.VisitsCreated.Inc()
	}
}

// IncVisitorsCreated counts a visitor created inline with a visit
func (m *Metrics) IncVisitorsCreated() {
	if m != nil {
		m.VisitorsCreated.Inc()
	}
}

// IncLoginFailure counts a rejected login
func (m *Metrics) IncLoginFailure(reason string) {
	if m != nil {
		m.LoginFailures.WithLabelValues(reason).Inc()
	}
}

// IncRateLimited counts a throttled request
func (m *Metrics) IncRateLimited() {
	if m != nil {
		m.RateLimited.Inc()
	}
}

// IncMail counts a mail delivery attempt
func (m *Metrics) IncMail(template string, ok bool) {
	if m != nil {
		m.MailsSent.WithLabelValues(template, result(ok)).Inc()
	}
}

// IncEvent counts a publish attempt
func (m *Metrics) IncEvent(typ string, ok bool) {
	if m != nil {
		m.EventsPublished.WithLabelValues(typ, result(ok)).Inc()
	}
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
