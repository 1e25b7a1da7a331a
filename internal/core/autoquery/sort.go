package autoquery

import (
	"slices"
	"strings"

	"gorm.io/gorm/clause"
)

// SortField is one ORDER BY entry
type SortField struct {
	Field string
	Desc  bool
}

// Asc sorts f ascending
func Asc(f string) SortField { return SortField{Field: f} }

// Desc sorts f descending
func Desc(f string) SortField { return SortField{Field: f, Desc: true} }

// Column renders the entry as a quoted GORM order column
func (s SortField) Column() clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: s.Field}, Desc: s.Desc}
}

// Sort builds ORDER BY entries from q["sort"], e.g. "firstname desc,createdAt".
// Client entries come first, then def. Without a sort string def is returned as is.
func Sort(q Query, def []SortField, allow []string) []SortField {
	raw, ok := q.str("sort")
	if !ok {
		return def
	}
	out := make([]SortField, 0, len(def)+2)
	for _, tok := range strings.Split(raw, ",") {
		parts := strings.Split(tok, " ")
		if !slices.Contains(allow, parts[0]) {
			continue
		}
		out = append(out, SortField{Field: parts[0], Desc: len(parts) > 1 && parts[1] == "desc"})
	}
	return append(out, def...)
}
