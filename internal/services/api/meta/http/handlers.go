// Package http serves the unauthenticated meta endpoints: health, readiness,
// version and uptime
package http

import (
	"context"
	"net/http"
	"time"

	"villagevisits/internal/core/version"
	"villagevisits/internal/modkit/httpkit"

	"golang.org/x/sync/errgroup"
)

// ReadyTimeout bounds one readiness round, checks run concurrently under it
const ReadyTimeout = 2 * time.Second

type Pinger interface {
	Ping(context.Context) error
}

type PingFunc func(context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Check is one named dependency, a nil Pinger is reported as skipped
type Check struct {
	Name   string
	Pinger Pinger
}

type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checks      []Check
	Now         func() time.Time
}

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	httpkit.Get(r, "/health", d.health)
	httpkit.Get(r, "/ready", d.ready)
	httpkit.Get(r, "/version", d.version)
	httpkit.Get(r, "/service", d.service)
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"villagevisits-api"`
	Started string `json:"started"  example:"2026-03-03T13:00:00Z"`
	Now     string `json:"now"      example:"2026-03-03T13:05:00Z"`
}

type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok" enums:"ok,fail,skipped"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok when every check passed, degraded when some were
// skipped and fail when any failed
type ReadyResponse struct {
	Status string       `json:"status" example:"ok" enums:"ok,degraded,fail"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-03-03T13:05:00Z"`
}

type ServiceResponse struct {
	Name    string `json:"name"    example:"villagevisits-api"`
	Started string `json:"started" example:"2026-03-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (d Deps) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: d.ServiceName, Started: stamp(d.StartedAt), Now: stamp(d.Now())}, nil
}

// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (d Deps) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), ReadyTimeout)
	defer cancel()

	checks := make([]ReadyCheck, len(d.Checks))
	var g errgroup.Group
	for i, c := range d.Checks {
		checks[i] = ReadyCheck{Name: c.Name, Status: "skipped"}
		if c.Pinger == nil {
			continue
		}
		g.Go(func() error {
			if err := c.Pinger.Ping(ctx); err != nil {
				checks[i].Status, checks[i].Error = "fail", err.Error()
				return nil
			}
			checks[i].Status = "ok"
			return nil
		})
	}
	_ = g.Wait()

	out := ReadyResponse{Status: "ok", Checks: checks, Now: stamp(d.Now())}
	for _, c := range checks {
		switch {
		case c.Status == "fail":
			out.Status = "fail"
		case c.Status == "skipped" && out.Status == "ok":
			out.Status = "degraded"
		}
	}
	if out.Status == "fail" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (d Deps) version(*http.Request) (any, error) {
	info := version.Info()
	if d.ServiceName != "" {
		info.Service = d.ServiceName
	}
	return info, nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (d Deps) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    d.ServiceName,
		Started: stamp(d.StartedAt),
		Uptime:  int64(d.Now().Sub(d.StartedAt) / time.Second),
	}, nil
}
