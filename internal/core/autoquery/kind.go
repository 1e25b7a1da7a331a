package autoquery

import "strings"

// Kind is the value type of a filterable field
type Kind uint8

const (
	// String fields compare text
	String Kind = iota + 1
	// Number fields require a finite float literal
	Number
	// Boolean fields go through ParseBool
	Boolean
	// Geometry fields take GeoJSON and use PostGIS predicates
	Geometry
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Geometry:
		return "geometry"
	}
	return "unknown"
}

// Fields maps a filterable column to its kind
type Fields map[string]Kind

// Op is a filter operator taken from the key suffix
type Op string

// Operators
const (
	OpEq          Op = "eq"
	OpNe          Op = "ne"
	OpLike        Op = "like"
	OpGt          Op = "gt"
	OpGte         Op = "gte"
	OpLt          Op = "lt"
	OpLte         Op = "lte"
	OpNull        Op = "null"
	OpNotNull     Op = "notnull"
	OpIn          Op = "in"
	OpNotIn       Op = "notin"
	OpWithin      Op = "within"
	OpNotWithin   Op = "notwithin"
	OpContains    Op = "contains"
	OpNotContains Op = "notcontains"
	OpDisjoint    Op = "disjoint"
	OpIntersects  Op = "intersects"
)

var legal = map[Kind]map[Op]bool{
	String:   set(OpEq, OpNe, OpLike, OpGt, OpGte, OpLt, OpLte, OpNull, OpNotNull, OpIn, OpNotIn),
	Number:   set(OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpNull, OpNotNull, OpIn, OpNotIn),
	Boolean:  set(OpEq, OpNull, OpNotNull),
	Geometry: set(OpEq, OpNe, OpNull, OpNotNull, OpWithin, OpNotWithin, OpContains,
		OpNotContains, OpDisjoint, OpIntersects),
}

func set(ops ...Op) map[Op]bool {
	m := make(map[Op]bool, len(ops))
	for _, o := range ops {
		m[o] = true
	}
	return m
}

// Legal reports whether op may be applied to a field of kind k
func Legal(k Kind, op Op) bool { return legal[k][op] }

// ParseBool is false for "false", "no", "0" and "" (any case) and true otherwise
func ParseBool(s string) bool {
	switch strings.ToLower(s) {
	case "false", "no", "0", "":
		return false
	}
	return true
}
