package repokit

import (
	"context"

	"gorm.io/gorm"
)

// Transactor is the ORM seam services hold
// DB is a ctx bound handle for reads, InTx one transaction for multi step writes
type Transactor interface {
	DB(ctx context.Context) *gorm.DB
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ORMBinder binds a repo to a gorm handle, the request db or an InTx tx
type ORMBinder[T any] interface {
	BindORM(*gorm.DB) T
}

// ORMBindFunc adapts a plain function to ORMBinder
type ORMBindFunc[T any] func(*gorm.DB) T

func (f ORMBindFunc[T]) BindORM(db *gorm.DB) T { return f(db) }

// Gorm is the Transactor over a real *gorm.DB
type Gorm struct{ db *gorm.DB }

// NewGorm panics on a nil db
func NewGorm(db *gorm.DB) Gorm {
	if db == nil {
		panic("repokit: nil gorm.DB")
	}
	return Gorm{db: db}
}

func (g Gorm) DB(ctx context.Context) *gorm.DB { return g.db.WithContext(ctx) }

// InTx rolls back when fn errors or panics
func (g Gorm) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

// NoTx hands fn a nil handle, for service tests whose repos ignore it
type NoTx struct{}

func (NoTx) DB(context.Context) *gorm.DB { return nil }

func (NoTx) InTx(_ context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }
