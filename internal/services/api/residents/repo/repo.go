// Package repo provides postgres access for resident profiles
package repo

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/modkit/repokit"

	"gorm.io/gorm"
)

// Repo defines the repository contract for residents
type Repo interface {
	Create(ctx context.Context, r *entity.ResidentUser) error
	List(ctx context.Context, q repokit.ListQuery) ([]entity.ResidentUser, int64, error)
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

func (q *queries) Create(ctx context.Context, r *entity.ResidentUser) error {
	return q.db.WithContext(ctx).Omit("User", "Village").Create(r).Error
}

func (q *queries) List(ctx context.Context, lq repokit.ListQuery) ([]entity.ResidentUser, int64, error) {
	return repokit.Page[entity.ResidentUser](ctx, q.db, lq)
}
