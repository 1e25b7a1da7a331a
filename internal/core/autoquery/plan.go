package autoquery

import (
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Resource is the query surface of one entity
type Resource struct {
	Fields      Fields
	SortAllow   []string
	DefaultSort []SortField
	Select      []string
	// Keys are always projected so preloads can join on them
	Keys []string
}

// Plan is everything a list query needs from the request
type Plan struct {
	Order  []SortField
	Select []string
	Where  Filter
}

// Build runs Sort, Selection and Where for r
func Build(q Query, r Resource) Plan {
	sel := Selection(q, r.Select)
	for _, k := range r.Keys {
		if !slices.Contains(sel, k) {
			sel = append(slices.Clip(sel), k)
		}
	}
	return Plan{
		Order:  Sort(q, r.DefaultSort, r.SortAllow),
		Select: sel,
		Where:  Where(q, r.Fields),
	}
}

// Plan is Build(q, r)
func (r Resource) Plan(q Query) Plan { return Build(q, r) }

// Count applies only the predicates, for COUNT queries
func (p Plan) Count(db *gorm.DB) *gorm.DB { return p.where(db) }

func (p Plan) where(db *gorm.DB) *gorm.DB {
	if e := p.Where.Expression(); e != nil {
		db = db.Clauses(clause.Where{Exprs: []clause.Expression{e}})
	}
	return db
}

// Apply is a GORM scope adding projection, predicates and ordering
func (p Plan) Apply(db *gorm.DB) *gorm.DB {
	db = p.where(db)
	if len(p.Select) > 0 {
		db = db.Select(p.Select)
	}
	for _, s := range p.Order {
		db = db.Order(s.Column())
	}
	return db
}
