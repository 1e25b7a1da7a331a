// Package repo provides postgres access for visits and visitors
package repo

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/modkit/repokit"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo defines the ORM repository contract for visits
type Repo interface {
	Create(ctx context.Context, v *entity.Visit) error
	CreateVisitor(ctx context.Context, v *entity.Visitor) error
	VisitorByID(ctx context.Context, id string) (*entity.Visitor, error)
	// FindVisitor matches by NID, or by phone and email together
	// it returns gorm.ErrRecordNotFound when neither key is usable or nothing matches
	FindVisitor(ctx context.Context, nid, phone, email string) (*entity.Visitor, error)
	List(ctx context.Context, q repokit.ListQuery) ([]entity.Visit, int64, error)
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

func (r *queries) Create(ctx context.Context, v *entity.Visit) error {
	return r.db.WithContext(ctx).Omit("Visitor", "Resident").Create(v).Error
}

func (r *queries) CreateVisitor(ctx context.Context, v *entity.Visitor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *queries) VisitorByID(ctx context.Context, id string) (*entity.Visitor, error) {
	var v entity.Visitor
	if err := r.db.WithContext(ctx).Take(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *queries) FindVisitor(ctx context.Context, nid, phone, email string) (*entity.Visitor, error) {
	var ors []clause.Expression
	if nid != "" {
		ors = append(ors, clause.Eq{Column: clause.Column{Name: "NID"}, Value: nid})
	}
	if phone != "" && email != "" {
		ors = append(ors, clause.And(
			clause.Eq{Column: clause.Column{Name: "phoneNumber"}, Value: phone},
			clause.Eq{Column: clause.Column{Name: "email"}, Value: email},
		))
	}
	if len(ors) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var v entity.Visitor
	err := r.db.WithContext(ctx).
		Clauses(clause.Where{Exprs: []clause.Expression{clause.Or(ors...)}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "createdAt"}}).
		Take(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *queries) List(ctx context.Context, q repokit.ListQuery) ([]entity.Visit, int64, error) {
	return repokit.Page[entity.Visit](ctx, r.db, q)
}
