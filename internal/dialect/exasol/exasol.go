// Package exasol implements the Exasol database dialect.
//
// Exasol stores every exact-width integer as a DECIMAL internally, so integer
// fields map to DECIMAL types of matching precision rather than to native
// integer names. Strings map to CLOB because source field lengths are not
// reliably known. BLOB does not exist in Exasol, so byte-array fields are
// rejected rather than coerced.
package exasol

import (
	"fmt"

	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/config"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/dialect"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/dialect/generic"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/schema"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/sqlbuilder"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/sqltypes"
)

func init() {
	dialect.Register(NewProvider())
}

// Provider creates Exasol dialects. All dialects from one provider share a
// single connection cache, so every task writing to the same Exasol instance
// with the same credentials reuses one handle.
type Provider struct {
	cache *dialect.ConnCache
}

// NewProvider returns a provider with its own connection cache. The registry
// holds one for the process; tests construct their own to get isolated
// caches.
func NewProvider() *Provider {
	return &Provider{cache: dialect.NewConnCache()}
}

func (p *Provider) Name() string { return "exasol" }

func (p *Provider) Subprotocols() []string { return []string{"exa"} }

func (p *Provider) Create(cfg *config.Config) (dialect.Dialect, error) {
	return New(cfg, p.cache), nil
}

// Dialect generates Exasol SQL and hands out shared connections. Statement
// generation is pure; the only shared state is the connection cache.
type Dialect struct {
	cfg   *config.Config
	rules sqlbuilder.IdentifierRules
	conns *dialect.ConnCache
}

// New returns an Exasol dialect that caches connections in cache.
func New(cfg *config.Config, cache *dialect.ConnCache) *Dialect {
	return &Dialect{
		cfg:   cfg,
		rules: sqlbuilder.IdentifierRules{Delimiter: ".", QuoteOpen: `"`, QuoteClose: `"`},
		conns: cache,
	}
}

func (d *Dialect) Name() string { return "exasol" }

func (d *Dialect) IdentifierRules() sqlbuilder.IdentifierRules { return d.rules }

// SQLType resolves a field to its Exasol column type. The logical type wins
// over the primitive type when both are present; logical time-of-day has no
// Exasol mapping and resolves through its primitive representation instead.
func (d *Dialect) SQLType(f schema.Field) (string, error) {
	switch f.Logical {
	case schema.LogicalDecimal:
		// Exasol's maximum decimal precision is 36.
		return fmt.Sprintf("DECIMAL(36,%d)", f.Scale), nil
	case schema.LogicalDate:
		return "DATE", nil
	case schema.LogicalTimestamp:
		return "TIMESTAMP", nil
	}
	switch f.Type {
	case schema.TypeInt8:
		return "DECIMAL(3,0)", nil
	case schema.TypeInt16:
		return "DECIMAL(5,0)", nil
	case schema.TypeInt32:
		return "DECIMAL(10,0)", nil
	case schema.TypeInt64:
		return "DECIMAL(19,0)", nil
	case schema.TypeFloat32:
		return "FLOAT", nil
	case schema.TypeFloat64:
		return "DOUBLE", nil
	case schema.TypeBoolean:
		return "BOOLEAN", nil
	case schema.TypeString:
		return "CLOB", nil
	}
	// TypeBytes lands here: Exasol has no BLOB, and the fallback declines it.
	return generic.SQLTypeFor(f)
}

// SQLTypeCode resolves a field to its generic SQL type code, with the same
// precedence as SQLType.
func (d *Dialect) SQLTypeCode(f schema.Field) (int, error) {
	switch f.Logical {
	case schema.LogicalDecimal:
		return sqltypes.Decimal, nil
	case schema.LogicalDate:
		return sqltypes.Date, nil
	case schema.LogicalTimestamp:
		return sqltypes.Timestamp, nil
	}
	switch f.Type {
	case schema.TypeInt8:
		return sqltypes.TinyInt, nil
	case schema.TypeInt16:
		return sqltypes.SmallInt, nil
	case schema.TypeInt32:
		return sqltypes.Integer, nil
	case schema.TypeInt64:
		return sqltypes.BigInt, nil
	case schema.TypeFloat32:
		return sqltypes.Float, nil
	case schema.TypeFloat64:
		return sqltypes.Double, nil
	case schema.TypeBoolean:
		return sqltypes.Boolean, nil
	case schema.TypeString:
		return sqltypes.Varchar, nil
	}
	return generic.SQLTypeCodeFor(f)
}

func (d *Dialect) BuildCreateTable(table sqlbuilder.TableRef, fields []schema.Field) (string, error) {
	return generic.CreateTable(d, table, fields)
}

// BuildDropTable emits DROP TABLE [IF EXISTS] <table> [CASCADE CONSTRAINTS].
// The options compose independently.
func (d *Dialect) BuildDropTable(table sqlbuilder.TableRef, opts dialect.DropOptions) string {
	b := sqlbuilder.New(d.rules)
	b.Append("DROP TABLE")
	if opts.IfExists {
		b.Append(" IF EXISTS")
	}
	b.Append(" ").AppendTable(table)
	if opts.Cascade {
		b.Append(" CASCADE CONSTRAINTS")
	}
	return b.String()
}

// BuildAlterTable emits one ALTER TABLE statement per field, in field order:
// Exasol cannot add more than one column per statement. The statements are
// independent; callers execute them in order.
func (d *Dialect) BuildAlterTable(table sqlbuilder.TableRef, fields []schema.Field) ([]string, error) {
	statements := make([]string, 0, len(fields))
	for _, f := range fields {
		stmt, err := generic.AlterAddColumns(d, table, []schema.Field{f})
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

func (d *Dialect) BuildInsert(table sqlbuilder.TableRef, columns []sqlbuilder.ColumnRef) string {
	return generic.Insert(d.rules, table, columns)
}
