// Package naming derives storage identifiers from model, table and column
// names by convention. It is used by the relation resolver as a fallback
// whenever a foreign or local key column was not configured explicitly, so
// the same inference is guaranteed across all relation kinds.
package naming

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// rules is the shared inflection ruleset. Built once, read-only afterwards.
var rules = inflect.NewDefaultRuleset()

const keySuffix = "_id"

// ForeignKey returns the conventional foreign-key column name for the given
// table, column or model name. A trailing "_id" is stripped first, the base
// token is canonicalized through the plural/singular rules so that plural,
// singular and already-derived inputs all map to the same column, and the
// "_id" suffix is appended back:
//
//	ForeignKey("users")   // "user_id"
//	ForeignKey("User")    // "user_id"
//	ForeignKey("user_id") // "user_id"
//	ForeignKey("people")  // "person_id"
func ForeignKey(name string) string {
	base := strings.TrimSuffix(name, keySuffix)
	base = rules.Singularize(rules.Pluralize(rules.Underscore(base)))
	return strings.ToLower(base) + keySuffix
}

// Table returns the conventional table name for a model identifier:
// snake-case, pluralized.
//
//	Table("User")      // "users"
//	Table("OrderItem") // "order_items"
func Table(model string) string {
	return strings.ToLower(rules.Pluralize(rules.Underscore(model)))
}
