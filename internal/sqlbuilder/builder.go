// Package sqlbuilder provides identifier quoting rules and a small fluent
// builder for assembling SQL statement text.
package sqlbuilder

import "strings"

// IdentifierRules describes how a dialect delimits and quotes identifiers.
type IdentifierRules struct {
	// Delimiter separates the parts of a qualified name (usually ".").
	Delimiter string
	// QuoteOpen and QuoteClose wrap a single identifier part.
	QuoteOpen  string
	QuoteClose string
}

// ANSIRules quotes identifiers with double quotes and joins qualified name
// parts with dots.
var ANSIRules = IdentifierRules{Delimiter: ".", QuoteOpen: `"`, QuoteClose: `"`}

// Quote returns the identifier wrapped in the dialect's quote characters,
// with embedded closing quotes doubled.
func (r IdentifierRules) Quote(name string) string {
	escaped := strings.ReplaceAll(name, r.QuoteClose, r.QuoteClose+r.QuoteClose)
	return r.QuoteOpen + escaped + r.QuoteClose
}

// TableRef is a fully qualified table identifier. Catalog and Schema may be
// empty; Name may not.
type TableRef struct {
	Catalog string
	Schema  string
	Name    string
}

// NewTable returns a TableRef with only the table name set.
func NewTable(name string) TableRef {
	return TableRef{Name: name}
}

// QualifiedName renders the table reference with every non-empty part quoted
// and joined by the dialect's delimiter.
func (t TableRef) QualifiedName(r IdentifierRules) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{t.Catalog, t.Schema, t.Name} {
		if p != "" {
			parts = append(parts, r.Quote(p))
		}
	}
	return strings.Join(parts, r.Delimiter)
}

// ColumnRef is a column name scoped to a table.
type ColumnRef struct {
	Table TableRef
	Name  string
}

// Columns builds a list of ColumnRefs on the given table from bare names.
func Columns(table TableRef, names ...string) []ColumnRef {
	cols := make([]ColumnRef, len(names))
	for i, n := range names {
		cols[i] = ColumnRef{Table: table, Name: n}
	}
	return cols
}

// ColumnTransform renders one column into the builder. Transforms are used
// with AppendColumnList to produce delimited projections, predicates, and
// assignment lists.
type ColumnTransform func(b *Builder, col ColumnRef)

// Builder accumulates SQL statement text under a set of identifier rules.
// The zero value is not usable; use New.
type Builder struct {
	sb    strings.Builder
	rules IdentifierRules
}

// New returns a Builder that quotes identifiers per the given rules.
func New(rules IdentifierRules) *Builder {
	return &Builder{rules: rules}
}

// Rules returns the identifier rules the builder quotes with.
func (b *Builder) Rules() IdentifierRules { return b.rules }

// Append writes s verbatim.
func (b *Builder) Append(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// AppendIdentifier writes name as a quoted identifier.
func (b *Builder) AppendIdentifier(name string) *Builder {
	b.sb.WriteString(b.rules.Quote(name))
	return b
}

// AppendTable writes the fully qualified, quoted table reference.
func (b *Builder) AppendTable(t TableRef) *Builder {
	b.sb.WriteString(t.QualifiedName(b.rules))
	return b
}

// AppendColumnList writes the columns of all groups, in order, separated by
// delim, rendering each through transform. Empty groups contribute nothing.
func (b *Builder) AppendColumnList(delim string, transform ColumnTransform, groups ...[]ColumnRef) *Builder {
	first := true
	for _, group := range groups {
		for _, col := range group {
			if !first {
				b.sb.WriteString(delim)
			}
			first = false
			transform(b, col)
		}
	}
	return b
}

// String returns the accumulated statement text.
func (b *Builder) String() string { return b.sb.String() }

// ColumnNames renders each column as its bare quoted name.
func ColumnNames() ColumnTransform {
	return func(b *Builder, col ColumnRef) {
		b.AppendIdentifier(col.Name)
	}
}

// ColumnNamesWithPrefix renders each column as the literal prefix followed by
// the quoted column name, e.g. `incoming."id"` or `? AS "id"`.
func ColumnNamesWithPrefix(prefix string) ColumnTransform {
	return func(b *Builder, col ColumnRef) {
		b.Append(prefix).AppendIdentifier(col.Name)
	}
}
