package domain

import (
	"context"

	"villagevisits/internal/core/entity"

	"gorm.io/gorm"
)

// ServicePort defines the service contract for auth
type ServicePort interface {
	AdminSignup(ctx context.Context, in AdminSignupInput) (AdminSession, error)
	AdminLogin(ctx context.Context, in LoginInput) (Session, error)
	Login(ctx context.Context, in LoginInput) (Session, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*entity.User, error)
}

// AccountsPort creates users for the modules that register people
type AccountsPort interface {
	// CheckUnique fails with a duplicate key error when email, phone or NID is taken
	CheckUnique(ctx context.Context, email, phone, nid string) error
	// Create inserts the user inside tx, the caller owns the transaction
	Create(ctx context.Context, tx *gorm.DB, a NewAccount) (*entity.User, error)
}
