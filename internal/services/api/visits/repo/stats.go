package repo

import (
	"context"
	"time"

	"villagevisits/internal/modkit/repokit"
	"villagevisits/internal/platform/store"
	"villagevisits/internal/services/api/visits/domain"
)

// Stats aggregates visits with hand written SQL over pgx
// an empty villageID aggregates every village
type Stats interface {
	PerDay(ctx context.Context, villageID string, since time.Time) ([]domain.DayCount, error)
	TopOrigins(ctx context.Context, villageID string, since time.Time, limit int) ([]domain.OriginCount, error)
}

type (
	// PG implements Stats over a Queryer
	PG struct{}

	stats struct{ q repokit.Queryer }
)

// NewPG creates a new stats binder
func NewPG() repokit.Binder[Stats] { return PG{} }

// Bind binds a Queryer to the Stats implementation
func (PG) Bind(q repokit.Queryer) Stats { return &stats{q: repokit.RequireQueryer(q)} }

const perDaySQL = `
SELECT "arrivalDate", count(*)
FROM visits
WHERE "arrivalDate" >= $1 AND ($2 = '' OR "villageId"::text = $2)
GROUP BY "arrivalDate"
ORDER BY "arrivalDate"`

const topOriginsSQL = `
SELECT "origin", count(*) AS n
FROM visits
WHERE "arrivalDate" >= $1 AND ($2 = '' OR "villageId"::text = $2)
GROUP BY "origin"
ORDER BY n DESC, "origin"
LIMIT $3`

func (s *stats) PerDay(ctx context.Context, villageID string, since time.Time) ([]domain.DayCount, error) {
	rows, err := s.q.Query(ctx, perDaySQL, since, villageID)
	return store.Collect(rows, err, func(r store.Row) (domain.DayCount, error) {
		var d domain.DayCount
		return d, r.Scan(&d.Day, &d.Visits)
	})
}

func (s *stats) TopOrigins(ctx context.Context, villageID string, since time.Time, limit int) ([]domain.OriginCount, error) {
	rows, err := s.q.Query(ctx, topOriginsSQL, since, villageID, limit)
	return store.Collect(rows, err, func(r store.Row) (domain.OriginCount, error) {
		var o domain.OriginCount
		return o, r.Scan(&o.Origin, &o.Visits)
	})
}
