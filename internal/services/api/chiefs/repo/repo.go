// Package repo provides postgres access for chief profiles
package repo

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/modkit/repokit"

	"gorm.io/gorm"
)

// Repo defines the repository contract for chiefs
type Repo interface {
	Create(ctx context.Context, c *entity.ChiefUser) error
	List(ctx context.Context, q repokit.ListQuery) ([]entity.ChiefUser, int64, error)
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

func (r *queries) Create(ctx context.Context, c *entity.ChiefUser) error {
	return r.db.WithContext(ctx).Omit("User", "Village").Create(c).Error
}

func (r *queries) List(ctx context.Context, q repokit.ListQuery) ([]entity.ChiefUser, int64, error) {
	return repokit.Page[entity.ChiefUser](ctx, r.db, q)
}
