// Package modkit provides module wiring and core deps
package modkit

import (
	"villagevisits/internal/modkit/httpkit"
	"villagevisits/internal/modkit/repokit"
	"villagevisits/internal/platform/auth"
	"villagevisits/internal/platform/blob"
	"villagevisits/internal/platform/config"
	"villagevisits/internal/platform/events"
	"villagevisits/internal/platform/logger"
	"villagevisits/internal/platform/mail"
	"villagevisits/internal/platform/metrics"
	"villagevisits/internal/platform/net/middleware"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps is everything a module may need, built once by the api
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG is the raw pgx seam for hand written SQL, DB the ORM over the same pool
	PG    repokit.TxRunner
	DB    *gorm.DB
	Redis redis.UniversalClient

	Tokens *auth.Tokens
	Hasher auth.Hasher
	Authz  httpkit.Authorizer

	Mail    mail.Queue
	Blobs   blob.Store
	Events  events.Publisher
	Metrics *metrics.Metrics
}

// WithDefaults fills optional collaborators with inert implementations
func (d Deps) WithDefaults() Deps {
	if d.Mail == nil {
		d.Mail = mail.Nop{Log: d.Log}
	}
	if d.Blobs == nil {
		d.Blobs = blob.Disabled{}
	}
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Hasher == (auth.Hasher{}) {
		d.Hasher = auth.NewHasher(auth.DefaultCost)
	}
	return d
}

// AuthPort is the bearer parser for Protected groups
// without Tokens every protected route answers 401
func (d Deps) AuthPort() middleware.AuthPort {
	if d.Tokens == nil {
		return httpkit.NewPortFunc(nil)
	}
	return httpkit.NewPortFunc(d.Tokens.Parse)
}
