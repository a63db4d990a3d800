package nexo

import (
	"fmt"
	"sort"
)

// An Entity is a single record loaded from storage: a primary-key value, a
// column to value mapping, and a private relation cache populated by the
// resolver. Entities are not safe for concurrent use; the engine assumes
// single-writer access per entity instance.
type Entity struct {
	client *Client
	model  *Model
	attrs  map[string]any
	// relations maps relationship name to its resolved value: *Entity
	// (possibly nil) for to-one, []*Entity for to-many. Written only by
	// the resolver; an entry, once present, is never re-queried unless
	// reset explicitly.
	relations map[string]any
}

// Model returns the name of the model the entity belongs to.
func (e *Entity) Model() string { return e.model.name }

// ID returns the primary-key value of the entity.
func (e *Entity) ID() any { return e.attrs[e.model.id] }

// Get returns the value of the named column, or nil if the column was not
// part of the loaded record.
func (e *Entity) Get(column string) any { return e.attrs[column] }

// Columns returns the sorted column names of the loaded record.
func (e *Entity) Columns() []string {
	columns := make([]string, 0, len(e.attrs))
	for c := range e.attrs {
		columns = append(columns, c)
	}
	sort.Strings(columns)
	return columns
}

// Relation returns the cached value of the named relationship and whether it
// was resolved, without triggering resolution. For to-one relationships the
// value is a *Entity (nil when no related row matched); for to-many it is a
// []*Entity, never nil. Use this to read relationships that were eager-loaded,
// including ones declared with Lazy(false).
func (e *Entity) Relation(name string) (any, bool) {
	v, ok := e.relations[name]
	return v, ok
}

// ResetRelation clears the cached value of the named relationship so the
// next access resolves it again. Intended for callers that mutated the
// underlying data and need a re-fetch.
func (e *Entity) ResetRelation(name string) {
	delete(e.relations, name)
}

// ResetRelations clears all cached relationship values.
func (e *Entity) ResetRelations() {
	e.relations = make(map[string]any)
}

// String implements the fmt.Stringer interface.
func (e *Entity) String() string {
	return fmt.Sprintf("%s(%s=%v)", e.model.name, e.model.id, e.ID())
}

// setRelation stores a resolved relationship value. Resolver-only.
func (e *Entity) setRelation(name string, v any) {
	e.relations[name] = v
}
