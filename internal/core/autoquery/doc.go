// Package autoquery turns request query parameters into sort, projection and
// filter clauses for GORM.
//
// Every operation is driven by per-resource allow-lists: only declared fields
// can be sorted, projected or filtered, and only operators legal for a field's
// Kind produce a predicate. Anything else is dropped without error, so a
// malformed query degrades to a broader result rather than a failure.
//
// Filter keys take the form field or field.op, split on the last dot:
//
//	?firstname.like=ann&createdAt.gte=2024-01-01&or=role,role.eq
//
// Keys listed in the or parameter go to the disjunction group; all other
// leaves go to the conjunction group.
package autoquery
