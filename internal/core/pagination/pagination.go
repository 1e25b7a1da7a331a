// Package pagination turns ?page=&count= into offsets and wraps list results
package pagination

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Defaults applied when the client omits or mangles a value
const (
	DefaultPage = 1
	DefaultSize = 20
	// MaxSize caps count; larger requests are served MaxSize rows
	MaxSize = 100
)

// Params is a resolved page window
type Params struct {
	Page   int
	Size   int
	Offset int
}

// Parse resolves raw query values; unparsable or non-positive inputs take the default
func Parse(page, count string) Params {
	p := positive(page, DefaultPage)
	s := positive(count, DefaultSize)
	if s > MaxSize {
		s = MaxSize
	}
	return Params{Page: p, Size: s, Offset: (p - 1) * s}
}

func positive(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Scope limits a GORM query to the window
func (p Params) Scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset).Limit(p.Size)
}

// TotalPages is ceil(total/size), with an empty set counting as one page
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(size)))
}

// Envelope is the list body returned by every collection endpoint
type Envelope[T any] struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	TotalItems int64 `json:"totalItems"`
	Items      []T   `json:"items"`
}

// New builds the envelope; nil items serialize as []
func New[T any](p Params, total int64, items []T) Envelope[T] {
	if items == nil {
		items = []T{}
	}
	if total < 0 {
		total = 0
	}
	return Envelope[T]{
		Page:       p.Page,
		TotalPages: TotalPages(total, p.Size),
		TotalItems: total,
		Items:      items,
	}
}

type ctxKey struct{}

// WithParams stores the window on ctx
func WithParams(ctx context.Context, p Params) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// From returns the window stored by Middleware, or the defaults
func From(ctx context.Context) Params {
	if p, ok := ctx.Value(ctxKey{}).(Params); ok {
		return p
	}
	return Parse("", "")
}

// Middleware parses the window once per request
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			p := Parse(q.Get("page"), q.Get("count"))
			next.ServeHTTP(w, r.WithContext(WithParams(r.Context(), p)))
		})
	}
}
