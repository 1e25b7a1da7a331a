// Package net provides utilities for working with request contexts
package net

import (
	"context"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyPrincipal ctxKey = "principal"

// Role names as stored on users.role
const (
	RoleAdmin        = "admin"
	RoleVillageChief = "village_chief"
	RoleResident     = "resident"
)

// Principal is the authenticated caller resolved from a bearer token
// ProfileID is the role row id (admin_users, chief_users or resident_users)
type Principal struct {
	UserID    string
	Role      string
	VillageID string
	ProfileID string
	TokenID   string
	ExpiresAt time.Time
}

// IsZero reports whether no caller is attached
func (p Principal) IsZero() bool { return p.UserID == "" }

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithPrincipal annotates context with the authenticated caller
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	if p.IsZero() {
		return ctx
	}
	return context.WithValue(ctx, keyPrincipal, p)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// PrincipalFrom returns the caller on the context if present
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(keyPrincipal).(Principal)
	return p, ok && !p.IsZero()
}

// UserID returns the authenticated user id on the context if present
func UserID(ctx context.Context) string {
	if p, ok := PrincipalFrom(ctx); ok {
		return p.UserID
	}
	return ""
}
