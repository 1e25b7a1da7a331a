package autoquery

import (
	"slices"
	"strings"
)

// Selection resolves q["include"] and q["exclude"] against allow.
// It never returns an empty list: when nothing survives, allow is returned.
func Selection(q Query, allow []string) []string {
	include := allowed(q, "include", allow)
	exclude := allowed(q, "exclude", allow)

	var out []string
	switch {
	case len(include) == 0 && len(exclude) == 0:
		out = allow
	case len(exclude) == 0:
		out = include
	case len(include) == 0:
		out = without(allow, exclude)
	default:
		out = without(include, exclude)
	}
	if len(out) == 0 {
		return allow
	}
	return out
}

func allowed(q Query, key string, allow []string) []string {
	raw, ok := q.str(key)
	if !ok {
		return nil
	}
	var out []string
	for _, f := range strings.Split(raw, ",") {
		if slices.Contains(allow, f) {
			out = append(out, f)
		}
	}
	return out
}

func without(from, drop []string) []string {
	out := make([]string, 0, len(from))
	for _, f := range from {
		if !slices.Contains(drop, f) {
			out = append(out, f)
		}
	}
	return out
}
