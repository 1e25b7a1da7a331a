// Package scope narrows queries to the rows the caller's role may see
package scope

import (
	"context"
	"net/http"

	pnet "villagevisits/internal/platform/net"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope is the row visibility of one request
// All is set for admins, otherwise VillageID (and ResidentID for residents) bound the rows
type Scope struct {
	All        bool
	VillageID  string
	ResidentID string
	none       bool
}

// Columns names the scoping columns a table has, empty means not bound
type Columns struct {
	Village  string
	Resident string
}

// Common column sets
var (
	VillageBound  = Columns{Village: "villageId"}
	ResidentBound = Columns{Village: "villageId", Resident: "residentUserId"}
)

// None matches no rows
var None = Scope{none: true}

// For resolves the scope of who
func For(who pnet.Principal) Scope {
	switch who.Role {
	case pnet.RoleAdmin:
		return Scope{All: true}
	case pnet.RoleVillageChief:
		if who.VillageID == "" {
			return None
		}
		return Scope{VillageID: who.VillageID}
	case pnet.RoleResident:
		if who.VillageID == "" || who.ProfileID == "" {
			return None
		}
		return Scope{VillageID: who.VillageID, ResidentID: who.ProfileID}
	}
	return None
}

// IsNone reports whether s matches nothing
func (s Scope) IsNone() bool { return s.none }

// Apply returns a GORM scope that adds the row filters for cols
func (s Scope) Apply(cols Columns) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case s.none:
			return db.Where("1 = 0")
		case s.All:
			return db
		}
		if cols.Village != "" && s.VillageID != "" {
			db = db.Where(clause.Eq{Column: clause.Column{Name: cols.Village}, Value: s.VillageID})
		}
		if cols.Resident != "" && s.ResidentID != "" {
			db = db.Where(clause.Eq{Column: clause.Column{Name: cols.Resident}, Value: s.ResidentID})
		}
		return db
	}
}

// Owns reports whether a row in villageID is visible under s
func (s Scope) Owns(villageID string) bool {
	if s.none {
		return false
	}
	return s.All || (s.VillageID != "" && s.VillageID == villageID)
}

type key struct{}

// With stores s on ctx
func With(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, key{}, s)
}

// From returns the scope on ctx, None when absent
func From(ctx context.Context) Scope {
	if s, ok := ctx.Value(key{}).(Scope); ok {
		return s
	}
	return None
}

// Middleware resolves the scope from the authenticated principal
// mount it after the auth middleware
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		who, _ := pnet.PrincipalFrom(r.Context())
		next.ServeHTTP(w, r.WithContext(With(r.Context(), For(who))))
	})
}
