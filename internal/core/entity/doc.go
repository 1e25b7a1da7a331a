// Package entity holds the persisted rows of the service and the query surface of each
//
// Column names are the camelCase names clients see, so a query string key is a column name
// and no mapping layer sits between autoquery and SQL. Identifiers are uuids generated by
// Postgres and carried as strings.
package entity
