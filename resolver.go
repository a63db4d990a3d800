package nexo

import (
	"context"
	"fmt"

	"github.com/syssam/nexo/dialect/sql"
	"github.com/syssam/nexo/naming"
	"github.com/syssam/nexo/schema/rel"
)

// pivotPrefix prefixes the pivot key columns selected alongside the related
// columns of a ManyThrough query, so they never collide with related columns.
const pivotPrefix = "pivot_"

// resolve populates the relation cache entry named by d on every entity of
// the batch, issuing at most one storage query regardless of batch size.
// The extra modifiers, if any, are applied after the declaration modifiers.
// On storage failure no cache entry is written for any entity of the batch.
func (c *Client) resolve(ctx context.Context, model *Model, batch []*Entity, d *rel.Descriptor, extra []func(*sql.Selector)) error {
	if len(batch) == 0 {
		return nil
	}
	related, ok := c.schema.Model(d.Model)
	if !ok {
		// Unreachable for schemas built with NewSchema; kept as a guard.
		return NewInvalidRelationError(model.name, d.Name, fmt.Sprintf("related model %q is not registered", d.Model))
	}
	switch d.Kind {
	case rel.KindOne:
		return c.resolveOne(ctx, model, related, batch, d, extra)
	case rel.KindMany:
		return c.resolveMany(ctx, model, related, batch, d, extra)
	case rel.KindManyThrough:
		if d.Pivot == "" {
			return NewInvalidRelationError(model.name, d.Name, "ManyThrough relation requires a pivot table")
		}
		return c.resolveManyThrough(ctx, model, related, batch, d, extra)
	default:
		return NewInvalidRelationError(model.name, d.Name, fmt.Sprintf("unknown relation kind %d", d.Kind))
	}
}

// resolveOne matches each owning entity's foreign-key value against the
// primary key of the related table. Entities with no matching row get the
// explicit nil marker; the first matching row wins on duplicates.
func (c *Client) resolveOne(ctx context.Context, model, related *Model, batch []*Entity, d *rel.Descriptor, extra []func(*sql.Selector)) error {
	fk := d.ForeignKey
	if fk == "" {
		fk = naming.ForeignKey(related.table)
	}
	keys := collectKeys(batch, func(e *Entity) any { return e.Get(fk) })
	if len(keys) == 0 {
		for _, e := range batch {
			e.setRelation(d.Name, (*Entity)(nil))
		}
		return nil
	}
	s := sql.Dialect(c.dialect()).
		From(related.table).
		Where(sql.In(related.table+"."+related.id, keys...)).
		Modify(d.Modifiers...).
		Modify(extra...)
	records, err := c.records(ctx, s, model.name, d.Name)
	if err != nil {
		return err
	}
	index := make(map[any]*Entity, len(records))
	for _, record := range records {
		k := normalizeKey(record[related.id])
		if _, ok := index[k]; !ok {
			index[k] = related.hydrate(c, record)
		}
	}
	for _, e := range batch {
		var match *Entity
		if v := e.Get(fk); v != nil {
			match = index[normalizeKey(v)]
		}
		e.setRelation(d.Name, match)
	}
	return nil
}

// resolveMany matches the related table's local-key column against each
// owning entity's primary key, preserving the storage-returned row order
// within every entity's group. Entities with no rows get an empty slice.
func (c *Client) resolveMany(ctx context.Context, model, related *Model, batch []*Entity, d *rel.Descriptor, extra []func(*sql.Selector)) error {
	lk := d.LocalKey
	if lk == "" {
		lk = naming.ForeignKey(model.table)
	}
	keys := collectKeys(batch, (*Entity).ID)
	if len(keys) == 0 {
		for _, e := range batch {
			e.setRelation(d.Name, []*Entity{})
		}
		return nil
	}
	s := sql.Dialect(c.dialect()).
		From(related.table).
		Where(sql.In(related.table+"."+lk, keys...)).
		Modify(d.Modifiers...).
		Modify(extra...)
	records, err := c.records(ctx, s, model.name, d.Name)
	if err != nil {
		return err
	}
	groups := make(map[any][]*Entity)
	for _, record := range records {
		k := normalizeKey(record[lk])
		groups[k] = append(groups[k], related.hydrate(c, record))
	}
	attachGroups(batch, d.Name, groups)
	return nil
}

// resolveManyThrough joins the related table to the pivot table and matches
// the pivot local-key column against each owning entity's primary key. The
// two pivot key columns are selected under the "pivot_" prefix and kept on
// the hydrated related entities.
func (c *Client) resolveManyThrough(ctx context.Context, model, related *Model, batch []*Entity, d *rel.Descriptor, extra []func(*sql.Selector)) error {
	fk := d.ForeignKey
	if fk == "" {
		fk = naming.ForeignKey(related.table)
	}
	lk := d.LocalKey
	if lk == "" {
		lk = naming.ForeignKey(model.table)
	}
	keys := collectKeys(batch, (*Entity).ID)
	if len(keys) == 0 {
		for _, e := range batch {
			e.setRelation(d.Name, []*Entity{})
		}
		return nil
	}
	s := sql.Dialect(c.dialect()).
		Select(
			related.table+".*",
			sql.As(d.Pivot+"."+fk, pivotPrefix+fk),
			sql.As(d.Pivot+"."+lk, pivotPrefix+lk),
		).
		From(related.table).
		Join(d.Pivot).On(d.Pivot+"."+fk, related.table+"."+related.id).
		Where(sql.In(d.Pivot+"."+lk, keys...)).
		Modify(d.Modifiers...).
		Modify(extra...)
	records, err := c.records(ctx, s, model.name, d.Name)
	if err != nil {
		return err
	}
	groups := make(map[any][]*Entity)
	for _, record := range records {
		k := normalizeKey(record[pivotPrefix+lk])
		groups[k] = append(groups[k], related.hydrate(c, record))
	}
	attachGroups(batch, d.Name, groups)
	return nil
}

// records executes the selector and returns the scanned record batch,
// consulting the configured cache first. Storage failures are wrapped in a
// QueryError carrying the model and relationship being resolved.
func (c *Client) records(ctx context.Context, s *sql.Selector, model, relation string) ([]map[string]any, error) {
	query, args := s.Query()
	key := cacheKey(query, args)
	if c.cache != nil {
		if data, err := c.cache.Get(ctx, key); err == nil && data != nil {
			return decodeRecords(data)
		}
	}
	rows := &sql.Rows{}
	if err := c.driver.Query(ctx, query, args, rows); err != nil {
		return nil, &QueryError{Model: model, Relation: relation, Err: err}
	}
	records, err := sql.ScanRecords(rows)
	if err != nil {
		return nil, &QueryError{Model: model, Relation: relation, Err: err}
	}
	if c.cache != nil {
		if data, err := encodeRecords(records); err == nil {
			_ = c.cache.Set(ctx, key, data, c.cacheTTL)
		}
	}
	return records, nil
}

// collectKeys returns the distinct non-nil key values of the batch in first
// appearance order, deduplicated on their normalized form.
func collectKeys(batch []*Entity, keyOf func(*Entity) any) []any {
	var keys []any
	seen := make(map[any]struct{}, len(batch))
	for _, e := range batch {
		v := keyOf(e)
		if v == nil {
			continue
		}
		k := normalizeKey(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, v)
	}
	return keys
}

// attachGroups writes each entity's group of related entities to its
// relation cache, assigning an empty slice where no rows matched.
func attachGroups(batch []*Entity, name string, groups map[any][]*Entity) {
	for _, e := range batch {
		g := groups[normalizeKey(e.ID())]
		if g == nil {
			g = []*Entity{}
		}
		e.setRelation(name, g)
	}
}

// normalizeKey converts scanned key values to a canonical comparable form,
// so values of the same key match across drivers and codecs (int vs int64,
// []byte vs string, float32 vs float64).
func normalizeKey(v any) any {
	switch v := v.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return float64(v)
	case []byte:
		return string(v)
	default:
		return v
	}
}
