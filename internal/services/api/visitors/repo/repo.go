// Package repo provides postgres access for the visitors listing
package repo

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/modkit/repokit"

	"gorm.io/gorm"
)

// Repo defines the repository contract for visitors
type Repo interface {
	Visits(ctx context.Context, q repokit.ListQuery) ([]entity.Visit, int64, error)
}

type (
	// ORM implements the Repo interface using GORM
	ORM struct{}

	queries struct{ db *gorm.DB }
)

// NewORM creates a new GORM repository binder
func NewORM() repokit.ORMBinder[Repo] { return ORM{} }

// BindORM binds a gorm handle to the Repo implementation
func (ORM) BindORM(db *gorm.DB) Repo { return &queries{db: db} }

func (r *queries) Visits(ctx context.Context, q repokit.ListQuery) ([]entity.Visit, int64, error) {
	return repokit.Page[entity.Visit](ctx, r.db, q)
}
