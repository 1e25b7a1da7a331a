package autoquery

import "net/url"

// Query is a decoded query string. Single values are strings; keys repeated
// in the URL hold []string and are ignored by every builder.
type Query map[string]any

// FromValues converts parsed URL values into a Query
func FromValues(v url.Values) Query {
	q := make(Query, len(v))
	for k, vals := range v {
		switch len(vals) {
		case 0:
		case 1:
			q[k] = vals[0]
		default:
			q[k] = append([]string(nil), vals...)
		}
	}
	return q
}

// str returns q[key] when it holds a string
func (q Query) str(key string) (string, bool) {
	s, ok := q[key].(string)
	return s, ok
}
