package repokit

import (
	"context"

	"villagevisits/internal/core/autoquery"
	"villagevisits/internal/core/pagination"

	"gorm.io/gorm"
)

// ListQuery is one page of a list endpoint
// Filters apply to both the count and the fetch, Preloads only to the fetch
type ListQuery struct {
	Plan     autoquery.Plan
	Page     pagination.Params
	Filters  []func(*gorm.DB) *gorm.DB
	Preloads []string
}

// Page counts the filtered rows of T then fetches the requested page
func Page[T any](ctx context.Context, db *gorm.DB, q ListQuery) ([]T, int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(new(T)).
		Scopes(q.Filters...).
		Scopes(q.Plan.Count).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]T, 0, q.Page.Size)
	if total == 0 {
		return items, 0, nil
	}
	fetch := db.WithContext(ctx).Scopes(q.Filters...).Scopes(q.Plan.Apply, q.Page.Scope)
	for _, p := range q.Preloads {
		fetch = fetch.Preload(p)
	}
	if err := fetch.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
