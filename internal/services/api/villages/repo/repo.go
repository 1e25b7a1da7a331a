// Package repo provides postgres access for villages
package repo

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/modkit/repokit"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo defines the repository contract for villages
type Repo interface {
	Create(ctx context.Context, v *entity.Village) error
	ByID(ctx context.Context, id string) (*entity.Village, error)
	// Named reports whether (cell, village) is used by a row other than exceptID
	Named(ctx context.Context, cell, village, exceptID string) (bool, error)
	List(ctx context.Context, q repokit.ListQuery) ([]entity.Village, int64, error)
	Update(ctx context.Context, v *entity.Village) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
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

func (r *queries) Create(ctx context.Context, v *entity.Village) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *queries) ByID(ctx context.Context, id string) (*entity.Village, error) {
	var v entity.Village
	if err := r.db.WithContext(ctx).Take(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *queries) Named(ctx context.Context, cell, village, exceptID string) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&entity.Village{}).Where(`"cell" = ? AND "village" = ?`, cell, village)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *queries) List(ctx context.Context, q repokit.ListQuery) ([]entity.Village, int64, error) {
	return repokit.Page[entity.Village](ctx, r.db, q)
}

func (r *queries) Update(ctx context.Context, v *entity.Village) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(v).
		Clauses(clause.Returning{}).
		Select("province", "district", "sector", "cell", "village", "aboutVillage", "updatedAt").
		Updates(v)
	return res.RowsAffected, res.Error
}

func (r *queries) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Village{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
