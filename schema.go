package nexo

import (
	"fmt"

	"github.com/syssam/nexo/naming"
	"github.com/syssam/nexo/schema/rel"
)

// A Model describes one entity type: its storage table, its primary-key
// column, and the ordered table of relationship declarations.
type Model struct {
	name      string
	table     string
	id        string
	relations []*rel.Descriptor
	index     map[string]*rel.Descriptor
}

// A ModelOption configures a model declaration.
type ModelOption func(*Model)

// Table overrides the table name derived from the model identifier.
func Table(name string) ModelOption {
	return func(m *Model) { m.table = name }
}

// ID overrides the primary-key column, "id" by default.
func ID(column string) ModelOption {
	return func(m *Model) { m.id = column }
}

// Relations declares the model relationships, in declaration order.
func Relations(builders ...*rel.Builder) ModelOption {
	return func(m *Model) {
		for _, b := range builders {
			m.relations = append(m.relations, b.Descriptor())
		}
	}
}

// NewModel declares a model with the given identifier. The table name
// defaults to the conventional plural form of the identifier.
func NewModel(name string, opts ...ModelOption) *Model {
	m := &Model{
		name:  name,
		table: naming.Table(name),
		id:    "id",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the model identifier.
func (m *Model) Name() string { return m.name }

// Table returns the model storage table.
func (m *Model) Table() string { return m.table }

// IDColumn returns the primary-key column.
func (m *Model) IDColumn() string { return m.id }

// Relations returns the declared relationship names in declaration order.
func (m *Model) Relations() []string {
	names := make([]string, len(m.relations))
	for i, d := range m.relations {
		names[i] = d.Name
	}
	return names
}

// Relation returns the declaration of the named relationship.
func (m *Model) Relation(name string) (*rel.Descriptor, bool) {
	d, ok := m.index[name]
	return d, ok
}

// hydrate produces an entity of this model from a storage record,
// with an empty relation cache.
func (m *Model) hydrate(c *Client, record map[string]any) *Entity {
	return &Entity{
		client:    c,
		model:     m,
		attrs:     record,
		relations: make(map[string]any),
	}
}

// A Schema is the validated, immutable registry of models. All relationship
// declarations are checked once at construction so that malformed
// configuration fails here rather than deep inside a batch resolution.
type Schema struct {
	models map[string]*Model
	order  []string
}

// NewSchema builds a schema from the given models, validating every
// relationship declaration: the kind must be one of the three known kinds,
// a pivot table must be set if and only if the kind is ManyThrough, names
// must be unique per model, and the related model must be registered.
func NewSchema(models ...*Model) (*Schema, error) {
	s := &Schema{models: make(map[string]*Model, len(models))}
	for _, m := range models {
		if _, ok := s.models[m.name]; ok {
			return nil, fmt.Errorf("nexo: duplicate model %q", m.name)
		}
		s.models[m.name] = m
		s.order = append(s.order, m.name)
	}
	for _, m := range models {
		m.index = make(map[string]*rel.Descriptor, len(m.relations))
		for _, d := range m.relations {
			if err := s.validate(m, d); err != nil {
				return nil, err
			}
			m.index[d.Name] = d
		}
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on configuration errors.
// Intended for static, package-level schema declarations.
func MustSchema(models ...*Model) *Schema {
	s, err := NewSchema(models...)
	if err != nil {
		panic(err)
	}
	return s
}

// Model returns the registered model with the given identifier.
func (s *Schema) Model(name string) (*Model, bool) {
	m, ok := s.models[name]
	return m, ok
}

// Models returns the registered model identifiers in registration order.
func (s *Schema) Models() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

func (s *Schema) validate(m *Model, d *rel.Descriptor) error {
	if d.Name == "" {
		return NewInvalidRelationError(m.name, d.Name, "relation name is empty")
	}
	if _, ok := m.index[d.Name]; ok {
		return NewInvalidRelationError(m.name, d.Name, "duplicate relation name")
	}
	switch d.Kind {
	case rel.KindOne, rel.KindMany:
		if d.Pivot != "" {
			return NewInvalidRelationError(m.name, d.Name, fmt.Sprintf("pivot table set on %s relation", d.Kind))
		}
	case rel.KindManyThrough:
		if d.Pivot == "" {
			return NewInvalidRelationError(m.name, d.Name, "ManyThrough relation requires a pivot table")
		}
	default:
		return NewInvalidRelationError(m.name, d.Name, fmt.Sprintf("unknown relation kind %d", d.Kind))
	}
	if _, ok := s.models[d.Model]; !ok {
		return NewInvalidRelationError(m.name, d.Name, fmt.Sprintf("related model %q is not registered", d.Model))
	}
	return nil
}
