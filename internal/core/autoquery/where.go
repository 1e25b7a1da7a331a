package autoquery

import (
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm/clause"
)

// Filter holds the predicates built from a query, split by group
type Filter struct {
	And []clause.Expression
	Or  []clause.Expression
}

// Empty reports whether no predicate survived
func (f Filter) Empty() bool { return len(f.And) == 0 && len(f.Or) == 0 }

// Expression folds both groups into one predicate: and... AND (or...).
// Returns nil when the filter is empty.
func (f Filter) Expression() clause.Expression {
	if f.Empty() {
		return nil
	}
	exprs := append([]clause.Expression(nil), f.And...)
	switch len(f.Or) {
	case 0:
	case 1:
		exprs = append(exprs, f.Or[0])
	default:
		exprs = append(exprs, clause.OrConditions{Exprs: append([]clause.Expression(nil), f.Or...)})
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return clause.AndConditions{Exprs: exprs}
}

// Where builds predicates from every string-valued key of q that names an
// allowed field. Keys are visited in lexical order.
func Where(q Query, fields Fields) Filter {
	var orKeys []string
	if raw, ok := q.str("or"); ok {
		orKeys = strings.Split(raw, ",")
	}

	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var f Filter
	for _, key := range keys {
		raw, ok := q.str(key)
		if !ok {
			continue
		}
		field, op := splitKey(key)
		kind, ok := fields[field]
		if !ok {
			continue
		}
		expr, ok := Leaf(field, raw, kind, op)
		if !ok {
			continue
		}
		if slices.Contains(orKeys, key) {
			f.Or = append(f.Or, expr)
		} else {
			f.And = append(f.And, expr)
		}
	}
	return f
}

// splitKey separates "field.op" on the last dot; a key without one (or with a
// leading dot only) is an equality on the whole key
func splitKey(key string) (string, Op) {
	if i := strings.LastIndex(key, "."); i > 0 {
		return key[:i], Op(key[i+1:])
	}
	return key, OpEq
}

// Leaf builds one predicate. ok is false when op is illegal for kind or raw
// does not parse as kind.
func Leaf(field, raw string, kind Kind, op Op) (clause.Expression, bool) {
	if !Legal(kind, op) {
		return nil, false
	}
	col := clause.Column{Name: field}

	switch op {
	case OpNull:
		return clause.Eq{Column: col, Value: nil}, true
	case OpNotNull:
		return clause.Neq{Column: col, Value: nil}, true
	}

	if kind == Geometry {
		return geometryLeaf(col, raw, op)
	}

	switch op {
	case OpLike:
		return clause.Expr{SQL: "CAST(? AS text) ILIKE ?", Vars: []any{col, "%" + raw + "%"}}, true
	case OpIn, OpNotIn:
		vals, ok := list(raw, kind)
		if !ok {
			return nil, false
		}
		in := clause.IN{Column: col, Values: vals}
		if op == OpNotIn {
			return clause.Not(in), true
		}
		return in, true
	}

	v, ok := scalar(raw, kind)
	if !ok {
		return nil, false
	}
	switch op {
	case OpEq:
		return clause.Eq{Column: col, Value: v}, true
	case OpNe:
		return clause.Neq{Column: col, Value: v}, true
	case OpGt:
		return clause.Gt{Column: col, Value: v}, true
	case OpGte:
		return clause.Gte{Column: col, Value: v}, true
	case OpLt:
		return clause.Lt{Column: col, Value: v}, true
	case OpLte:
		return clause.Lte{Column: col, Value: v}, true
	}
	return nil, false
}

func scalar(raw string, kind Kind) (any, bool) {
	switch kind {
	case String:
		return raw, true
	case Number:
		return number(raw)
	case Boolean:
		return ParseBool(raw), true
	}
	return nil, false
}

func number(raw string) (any, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, false
	}
	return n, true
}

func list(raw string, kind Kind) ([]any, bool) {
	parts := strings.Split(raw, ",")
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		v, ok := scalar(p, kind)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

var spatial = map[Op]struct {
	fn  string
	not bool
}{
	OpEq:          {"ST_Equals", false},
	OpNe:          {"ST_Equals", true},
	OpWithin:      {"ST_Within", false},
	OpNotWithin:   {"ST_Within", true},
	OpContains:    {"ST_Contains", false},
	OpNotContains: {"ST_Contains", true},
	OpDisjoint:    {"ST_Disjoint", false},
	OpIntersects:  {"ST_Intersects", false},
}

func geometryLeaf(col clause.Column, raw string, op Op) (clause.Expression, bool) {
	s, ok := spatial[op]
	if !ok || !ValidGeoJSON(raw) {
		return nil, false
	}
	sql := s.fn + "(?, ST_GeomFromGeoJSON(?))"
	if s.not {
		sql = "NOT " + sql
	}
	return clause.Expr{SQL: sql, Vars: []any{col, raw}}, true
}
