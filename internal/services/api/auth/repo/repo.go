// Package repo provides postgres access for users and admin profiles
package repo

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/modkit/repokit"

	"gorm.io/gorm"
)

// Repo defines the repository contract for auth
type Repo interface {
	// ByEmail loads a user with whichever profile row it has
	ByEmail(ctx context.Context, email string) (*entity.User, error)
	// ByID loads a user with its profile and the profile's village
	ByID(ctx context.Context, id string) (*entity.User, error)
	// Taken reports whether any user already has email, phone or nid
	Taken(ctx context.Context, email, phone, nid string) (bool, error)
	CreateUser(ctx context.Context, u *entity.User) error
	CreateAdmin(ctx context.Context, a *entity.AdminUser) error
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

func profiles(db *gorm.DB) *gorm.DB {
	return db.Preload("Admin").Preload("Chief").Preload("Resident")
}

func (r *queries) ByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).Scopes(profiles).Where(`"email" = ?`, email).Take(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *queries) ByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).
		Scopes(profiles).
		Preload("Chief.Village").
		Preload("Resident.Village").
		Take(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *queries) Taken(ctx context.Context, email, phone, nid string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where(`"email" = ? OR "phoneNumber" = ? OR "NID" = ?`, email, phone, nid).
		Count(&n).Error
	return n > 0, err
}

func (r *queries) CreateUser(ctx context.Context, u *entity.User) error {
	return r.db.WithContext(ctx).Omit("Admin", "Chief", "Resident").Create(u).Error
}

func (r *queries) CreateAdmin(ctx context.Context, a *entity.AdminUser) error {
	return r.db.WithContext(ctx).Create(a).Error
}
