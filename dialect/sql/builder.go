package sql

import (
	"strconv"
	"strings"

	"github.com/syssam/nexo/dialect"
)

// Builder is the base SQL builder. It accumulates the query text and the
// bound arguments, and applies the dialect quoting and placeholder rules.
type Builder struct {
	sb      strings.Builder
	dialect string
	args    []any
}

// WriteString appends the string to the query buffer.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// Quote quotes the given identifier with the characters based
// on the configured dialect. It is ignored for raw expressions.
func (b *Builder) Quote(ident string) string {
	quote := `"`
	if b.dialect == dialect.MySQL {
		quote = "`"
	}
	return quote + ident + quote
}

// Ident appends the given string as an identifier: alias expressions are
// split on " AS ", qualified names are quoted per part, and expressions
// containing function calls or "*" are written as-is.
func (b *Builder) Ident(s string) *Builder {
	if base, alias, ok := strings.Cut(s, " AS "); ok {
		b.Ident(base)
		b.WriteString(" AS ")
		b.WriteString(b.Quote(alias))
		return b
	}
	if strings.ContainsAny(s, "()") {
		b.WriteString(s)
		return b
	}
	parts := strings.Split(s, ".")
	for i, p := range parts {
		if i > 0 {
			b.WriteString(".")
		}
		if p == "*" {
			b.WriteString(p)
		} else {
			b.WriteString(b.Quote(p))
		}
	}
	return b
}

// Arg appends the given argument to the builder and writes
// the matching placeholder for the configured dialect.
func (b *Builder) Arg(v any) *Builder {
	b.args = append(b.args, v)
	if b.dialect == dialect.Postgres {
		b.WriteString("$" + strconv.Itoa(len(b.args)))
	} else {
		b.WriteString("?")
	}
	return b
}

// Args appends a comma-separated list of arguments.
func (b *Builder) Args(vs ...any) *Builder {
	for i, v := range vs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Arg(v)
	}
	return b
}

// String returns the accumulated query text.
func (b *Builder) String() string { return b.sb.String() }

// As returns an aliased identifier expression for SELECT lists.
func As(ident, as string) string {
	return ident + " AS " + as
}

// A Predicate is a condition appended to the WHERE clause of a query.
type Predicate struct {
	fns []func(*Builder)
}

// P creates a new predicate from the given builder functions.
func P(fns ...func(*Builder)) *Predicate {
	return &Predicate{fns: fns}
}

// EQ returns a column = value predicate.
func EQ(col string, v any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col)
		b.WriteString(" = ")
		b.Arg(v)
	})
}

// In returns a column IN (...) predicate. An empty value list
// produces a FALSE condition rather than invalid SQL.
func In(col string, vs ...any) *Predicate {
	return P(func(b *Builder) {
		if len(vs) == 0 {
			b.WriteString("FALSE")
			return
		}
		b.Ident(col)
		b.WriteString(" IN (")
		b.Args(vs...)
		b.WriteString(")")
	})
}

// And combines the given predicates into a conjunction.
func And(ps ...*Predicate) *Predicate {
	return P(func(b *Builder) {
		for i, p := range ps {
			if i > 0 {
				b.WriteString(" AND ")
			}
			for _, fn := range p.fns {
				fn(b)
			}
		}
	})
}

// clause writes the predicate body into the builder.
func (p *Predicate) clause(b *Builder) {
	for _, fn := range p.fns {
		fn(b)
	}
}

// A Selector builds a SELECT statement. Zero or more predicates, joins and
// modifiers can be applied before the final query text is produced.
type Selector struct {
	dialect string
	columns []string
	table   string
	joins   []join
	where   *Predicate
	orderBy []string
	limit   *int
}

type join struct {
	table string
	left  string
	right string
}

// Dialect sets the dialect the built statement is targeting.
func Dialect(name string) *Selector {
	return &Selector{dialect: name}
}

// Select returns a new dialect-less selector with the given columns.
// Useful mostly for tests; production paths start with Dialect.
func Select(columns ...string) *Selector {
	return &Selector{columns: columns}
}

// Select replaces the selected column list.
func (s *Selector) Select(columns ...string) *Selector {
	s.columns = columns
	return s
}

// AppendSelect appends columns to the selected column list.
func (s *Selector) AppendSelect(columns ...string) *Selector {
	s.columns = append(s.columns, columns...)
	return s
}

// From sets the table the statement selects from.
func (s *Selector) From(table string) *Selector {
	s.table = table
	return s
}

// Table returns the table the statement selects from.
func (s *Selector) Table() string { return s.table }

// Dialect returns the dialect the statement targets.
func (s *Selector) Dialect() string { return s.dialect }

// C returns the given column qualified by the selector table.
func (s *Selector) C(column string) string {
	if s.table == "" {
		return column
	}
	return s.table + "." + column
}

// Where appends the given predicate, conjoined with any previous one.
func (s *Selector) Where(p *Predicate) *Selector {
	if s.where != nil {
		p = And(s.where, p)
	}
	s.where = p
	return s
}

// Join appends a JOIN to the statement. The join condition is set
// with On on the returned selector.
func (s *Selector) Join(table string) *Selector {
	s.joins = append(s.joins, join{table: table})
	return s
}

// On sets the join condition of the lastly appended join.
func (s *Selector) On(left, right string) *Selector {
	if len(s.joins) > 0 {
		s.joins[len(s.joins)-1].left = left
		s.joins[len(s.joins)-1].right = right
	}
	return s
}

// OrderBy appends the given columns to the ORDER BY clause.
func (s *Selector) OrderBy(columns ...string) *Selector {
	s.orderBy = append(s.orderBy, columns...)
	return s
}

// Limit sets the LIMIT clause of the statement.
func (s *Selector) Limit(n int) *Selector {
	s.limit = &n
	return s
}

// Modify applies the given modifiers to the selector. It is the hook used
// for per-relationship query customization.
func (s *Selector) Modify(fns ...func(*Selector)) *Selector {
	for _, fn := range fns {
		fn(s)
	}
	return s
}

// Query returns the query text and the bound arguments.
func (s *Selector) Query() (string, []any) {
	b := &Builder{dialect: s.dialect}
	b.WriteString("SELECT ")
	if len(s.columns) == 0 {
		b.WriteString("*")
	}
	for i, c := range s.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Ident(c)
	}
	b.WriteString(" FROM ")
	b.Ident(s.table)
	for _, j := range s.joins {
		b.WriteString(" JOIN ")
		b.Ident(j.table)
		b.WriteString(" ON ")
		b.Ident(j.left)
		b.WriteString(" = ")
		b.Ident(j.right)
	}
	if s.where != nil {
		b.WriteString(" WHERE ")
		s.where.clause(b)
	}
	for i, c := range s.orderBy {
		if i == 0 {
			b.WriteString(" ORDER BY ")
		} else {
			b.WriteString(", ")
		}
		b.Ident(c)
	}
	if s.limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(*s.limit))
	}
	return b.String(), b.args
}
