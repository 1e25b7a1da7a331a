// Package repo provides postgres access for announcements
package repo

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/modkit/repokit"

	"gorm.io/gorm"
)

// Repo defines the repository contract for announcements
// scoped calls take a GORM scope so rows outside the caller's village read as missing
type Repo interface {
	Create(ctx context.Context, a *entity.Announcement) error
	Author(ctx context.Context, userID string) (*entity.User, error)
	List(ctx context.Context, q repokit.ListQuery) ([]entity.Announcement, int64, error)
	ByID(ctx context.Context, id string, scoped func(*gorm.DB) *gorm.DB) (*entity.Announcement, error)
	Delete(ctx context.Context, id string, scoped func(*gorm.DB) *gorm.DB) (int64, error)
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

func (r *queries) Create(ctx context.Context, a *entity.Announcement) error {
	return r.db.WithContext(ctx).Omit("Author").Create(a).Error
}

func (r *queries) Author(ctx context.Context, userID string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Take(&u, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *queries) List(ctx context.Context, q repokit.ListQuery) ([]entity.Announcement, int64, error) {
	return repokit.Page[entity.Announcement](ctx, r.db, q)
}

func (r *queries) ByID(ctx context.Context, id string, scoped func(*gorm.DB) *gorm.DB) (*entity.Announcement, error) {
	var a entity.Announcement
	err := r.db.WithContext(ctx).Scopes(scoped).Preload("Author").Take(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *queries) Delete(ctx context.Context, id string, scoped func(*gorm.DB) *gorm.DB) (int64, error) {
	res := r.db.WithContext(ctx).Scopes(scoped).Delete(&entity.Announcement{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
