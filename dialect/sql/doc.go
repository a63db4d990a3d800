// Package sql provides the standard database/sql implementation of the
// dialect.Driver interface, a small SQL SELECT builder used by the relation
// resolver, and helpers for scanning row sets into associative records.
package sql
