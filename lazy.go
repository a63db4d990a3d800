package nexo

import (
	"context"
	"fmt"
)

// One returns the entity related through the named to-one relationship,
// resolving it on first access and memoizing the result on the entity.
// A nil entity (with nil error) means no related row matched.
//
// Relationships declared with Lazy(false) fail with a LazyDisabledError and
// never reach storage; eager-load them on the query and read them with
// Relation instead.
func (e *Entity) One(ctx context.Context, name string) (*Entity, error) {
	v, err := e.load(ctx, name)
	if err != nil {
		return nil, err
	}
	related, ok := v.(*Entity)
	if !ok {
		return nil, fmt.Errorf("nexo: relation %q on model %q is a to-many relation; use Many", name, e.model.name)
	}
	return related, nil
}

// Many returns the entities related through the named to-many relationship,
// resolving them on first access and memoizing the result on the entity.
// The returned slice is never nil.
func (e *Entity) Many(ctx context.Context, name string) ([]*Entity, error) {
	v, err := e.load(ctx, name)
	if err != nil {
		return nil, err
	}
	related, ok := v.([]*Entity)
	if !ok {
		return nil, fmt.Errorf("nexo: relation %q on model %q is a to-one relation; use One", name, e.model.name)
	}
	return related, nil
}

// load resolves the named relationship for this single entity. The cache is
// consulted first; a resolved entry is never re-queried unless reset.
func (e *Entity) load(ctx context.Context, name string) (any, error) {
	d, ok := e.model.Relation(name)
	if !ok {
		return nil, NewUndefinedRelationError(e.model.name, name)
	}
	if !d.Lazy {
		return nil, NewLazyDisabledError(e.model.name, name)
	}
	if v, ok := e.relations[name]; ok {
		return v, nil
	}
	if err := e.client.resolve(ctx, e.model, []*Entity{e}, d, nil); err != nil {
		return nil, err
	}
	return e.relations[name], nil
}
