package nexo

import (
	"context"
	"fmt"

	"github.com/syssam/nexo/dialect/sql"
	"github.com/syssam/nexo/schema/rel"
)

// A Query loads a batch of entities of a single model and eager-loads the
// requested relationships once the batch materializes. Relationships are
// resolved sequentially in request order, one query each, after the base
// rows are hydrated and before the batch is returned.
type Query struct {
	client    *Client
	model     *Model
	err       error
	modifiers []func(*sql.Selector)
	order     []string
	limit     *int
	loads     []*load
}

// load is a deferred relationship load registered with With.
type load struct {
	desc      *rel.Descriptor
	modifiers []func(*sql.Selector)
}

// Model returns a query builder for the named model. An unregistered name
// is reported when the query executes.
func (c *Client) Model(name string) *Query {
	q := &Query{client: c}
	m, ok := c.schema.Model(name)
	if !ok {
		q.err = fmt.Errorf("nexo: model %q is not registered", name)
		return q
	}
	q.model = m
	return q
}

// Where appends modifiers applied to the base query before execution.
func (q *Query) Where(fns ...func(*sql.Selector)) *Query {
	q.modifiers = append(q.modifiers, fns...)
	return q
}

// Order appends columns to the ORDER BY clause of the base query.
func (q *Query) Order(columns ...string) *Query {
	q.order = append(q.order, columns...)
	return q
}

// Limit limits the number of entities returned by the base query.
func (q *Query) Limit(n int) *Query {
	q.limit = &n
	return q
}

// With registers the named relationships for eager loading. Unknown names
// fail the query with an UndefinedRelationError before any query is issued.
func (q *Query) With(names ...string) *Query {
	for _, name := range names {
		q.with(name, nil)
	}
	return q
}

// WithModified registers the named relationship for eager loading with
// additional query modifiers, applied after the declaration modifiers.
func (q *Query) WithModified(name string, fns ...func(*sql.Selector)) *Query {
	q.with(name, fns)
	return q
}

// WithAll registers every relationship declared on the model for eager
// loading, in declaration order.
func (q *Query) WithAll() *Query {
	if q.model != nil {
		return q.With(q.model.Relations()...)
	}
	return q
}

func (q *Query) with(name string, fns []func(*sql.Selector)) {
	if q.err != nil || q.model == nil {
		return
	}
	d, ok := q.model.Relation(name)
	if !ok {
		q.err = NewUndefinedRelationError(q.model.name, name)
		return
	}
	q.loads = append(q.loads, &load{desc: d, modifiers: fns})
}

// All executes the query and returns the entity batch with all registered
// relationships resolved.
func (q *Query) All(ctx context.Context) ([]*Entity, error) {
	return q.all(ctx, q.limit)
}

// First executes the query and returns the first entity. Returns a
// NotFoundError when no entity was found.
func (q *Query) First(ctx context.Context) (*Entity, error) {
	limit := 1
	batch, err := q.all(ctx, &limit)
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, &NotFoundError{model: q.model.name}
	}
	return batch[0], nil
}

// Only executes the query and returns the single matching entity. Returns a
// NotFoundError when none was found, and a NotSingularError when more than
// one was.
func (q *Query) Only(ctx context.Context) (*Entity, error) {
	limit := 2
	batch, err := q.all(ctx, &limit)
	if err != nil {
		return nil, err
	}
	switch len(batch) {
	case 1:
		return batch[0], nil
	case 0:
		return nil, &NotFoundError{model: q.model.name}
	default:
		return nil, &NotSingularError{model: q.model.name}
	}
}

// Count returns the number of entities matching the base query. Registered
// eager loads are ignored.
func (q *Query) Count(ctx context.Context) (int, error) {
	if err := q.check(); err != nil {
		return 0, err
	}
	s := q.selector(nil).Select(sql.As("COUNT(*)", "count"))
	records, err := q.client.records(ctx, s, q.model.name, "")
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	n, ok := normalizeKey(records[0]["count"]).(int64)
	if !ok {
		return 0, fmt.Errorf("nexo: counting %s: unexpected count value %v", q.model.name, records[0]["count"])
	}
	return int(n), nil
}

// Exist reports whether any entity matches the base query.
func (q *Query) Exist(ctx context.Context) (bool, error) {
	if err := q.check(); err != nil {
		return false, err
	}
	limit := 1
	s := q.selector(&limit).Select(q.model.table + "." + q.model.id)
	records, err := q.client.records(ctx, s, q.model.name, "")
	if err != nil {
		return false, err
	}
	return len(records) > 0, nil
}

func (q *Query) all(ctx context.Context, limit *int) ([]*Entity, error) {
	if err := q.check(); err != nil {
		return nil, err
	}
	records, err := q.client.records(ctx, q.selector(limit), q.model.name, "")
	if err != nil {
		return nil, err
	}
	batch := make([]*Entity, len(records))
	for i, record := range records {
		batch[i] = q.model.hydrate(q.client, record)
	}
	for _, l := range q.loads {
		if err := q.client.resolve(ctx, q.model, batch, l.desc, l.modifiers); err != nil {
			return nil, err
		}
	}
	return batch, nil
}

// check reports builder errors before any query is issued.
func (q *Query) check() error {
	if q.err != nil {
		return q.err
	}
	if q.client.driver == nil {
		return fmt.Errorf("nexo: no storage driver configured")
	}
	return nil
}

// selector builds the base query selector.
func (q *Query) selector(limit *int) *sql.Selector {
	s := sql.Dialect(q.client.dialect()).
		From(q.model.table).
		Modify(q.modifiers...)
	if len(q.order) > 0 {
		s.OrderBy(q.order...)
	}
	if limit != nil {
		s.Limit(*limit)
	}
	return s
}
