// Package rel provides the builders used to declare entity relationships.
//
// A relationship is declared on the owning model with one of the three kind
// constructors and refined with the builder methods:
//
//	rel.Many("posts", "Post").LocalKey("author_id")
//	rel.One("author", "User").Lazy(false)
//	rel.ManyThrough("tags", "Tag").Through("post_tags")
//
// Key columns left unset are inferred by naming convention when the
// relationship is resolved.
package rel

import "github.com/syssam/nexo/dialect/sql"

// A Kind is the discriminant of a relationship declaration.
type Kind int

const (
	// KindOne relates the owning entity to at most one related entity,
	// matched through a foreign-key column on the owning side.
	KindOne Kind = iota + 1
	// KindMany relates the owning entity to any number of related
	// entities, matched through a key column on the related side.
	KindMany
	// KindManyThrough relates the owning entity to any number of related
	// entities through a pivot table holding both key columns.
	KindManyThrough
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOne:
		return "One"
	case KindMany:
		return "Many"
	case KindManyThrough:
		return "ManyThrough"
	default:
		return "Unknown"
	}
}

// A Descriptor is the declaration of a single relationship. Descriptors are
// built once per model, validated at schema registration, and treated as
// immutable afterwards.
type Descriptor struct {
	Name       string                // relationship name, unique per model.
	Kind       Kind                  // relation kind discriminant.
	Model      string                // related model identifier.
	ForeignKey string                // optional; inferred from the related table when empty.
	LocalKey   string                // optional; inferred from the owning table when empty.
	Pivot      string                // pivot table; required iff Kind == KindManyThrough.
	Lazy       bool                  // lazy access allowed; defaults to true.
	Modifiers  []func(*sql.Selector) // query customizers applied before execution.
}

// A Builder configures a relationship Descriptor.
type Builder struct {
	desc *Descriptor
}

// One declares a to-one relationship with the named model.
func One(name, model string) *Builder {
	return newBuilder(name, model, KindOne)
}

// Many declares a to-many relationship with the named model.
func Many(name, model string) *Builder {
	return newBuilder(name, model, KindMany)
}

// ManyThrough declares a to-many relationship with the named model through
// a pivot table, set with Through.
func ManyThrough(name, model string) *Builder {
	return newBuilder(name, model, KindManyThrough)
}

func newBuilder(name, model string, kind Kind) *Builder {
	return &Builder{desc: &Descriptor{
		Name:  name,
		Kind:  kind,
		Model: model,
		Lazy:  true,
	}}
}

// ForeignKey overrides the inferred foreign-key column.
func (b *Builder) ForeignKey(column string) *Builder {
	b.desc.ForeignKey = column
	return b
}

// LocalKey overrides the inferred local-key column.
func (b *Builder) LocalKey(column string) *Builder {
	b.desc.LocalKey = column
	return b
}

// Through sets the pivot table of a ManyThrough relationship.
func (b *Builder) Through(table string) *Builder {
	b.desc.Pivot = table
	return b
}

// Lazy controls whether the relationship may be resolved lazily on first
// access. When disabled, per-entity access fails and callers must eager-load
// the relationship on the query instead.
func (b *Builder) Lazy(lazy bool) *Builder {
	b.desc.Lazy = lazy
	return b
}

// Modify appends query customizers applied to the relation query before it
// executes.
func (b *Builder) Modify(fns ...func(*sql.Selector)) *Builder {
	b.desc.Modifiers = append(b.desc.Modifiers, fns...)
	return b
}

// Descriptor returns the built declaration.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
