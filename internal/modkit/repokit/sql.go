// Package repokit holds the seams repositories are built on:
// a gorm Transactor for CRUD, pgx Binders for hand written SQL, and paging
package repokit

import (
	"context"

	"villagevisits/internal/platform/store"
)

type (
	// Queryer is the SQL surface a bound repo runs on
	Queryer = store.RowQuerier
	// TxRunner opens transactions on the pgx pool
	TxRunner = store.TxRunner
)

// Binder binds a SQL repo to the pool or to a tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain function to Binder
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// RequireQueryer panics on a nil q, binding one is a wiring bug
func RequireQueryer(q Queryer) Queryer {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return q
}

// BeginHook runs first inside every transaction of a hooked runner
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns inner with hooks run at the start of each Tx,
// statements outside a Tx pass straight through
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hooked{TxRunner: inner, hooks: hooks}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h hooked) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hook := range h.hooks {
			if err := hook(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}
