// Package generic implements a portable ANSI-leaning dialect. It serves two
// roles: the registered fallback dialect for URLs no other dialect claims,
// and a library of statement generators and type tables that concrete
// dialects compose and selectively override.
package generic

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/config"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/dialect"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/schema"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/sqlbuilder"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/sqltypes"
)

func init() {
	dialect.Register(&Provider{})
}

// Provider registers the generic dialect as the fallback for unclaimed
// subprotocols.
type Provider struct{}

func (p *Provider) Name() string { return "generic" }

// Subprotocols is empty: the generic dialect is selected only as the
// registry's fallback or by explicit configuration.
func (p *Provider) Subprotocols() []string { return nil }

func (p *Provider) Create(cfg *config.Config) (dialect.Dialect, error) {
	return New(cfg), nil
}

// Dialect is the generic dialect. Statement generation is stateless; the
// connection handle is opened lazily and owned by this instance.
type Dialect struct {
	cfg   *config.Config
	rules sqlbuilder.IdentifierRules

	mu sync.Mutex
	db *sql.DB
}

// New returns a generic dialect for the given configuration.
func New(cfg *config.Config) *Dialect {
	return &Dialect{cfg: cfg, rules: sqlbuilder.ANSIRules}
}

func (d *Dialect) Name() string { return "generic" }

func (d *Dialect) IdentifierRules() sqlbuilder.IdentifierRules { return d.rules }

func (d *Dialect) SQLType(f schema.Field) (string, error) { return SQLTypeFor(f) }

func (d *Dialect) SQLTypeCode(f schema.Field) (int, error) { return SQLTypeCodeFor(f) }

func (d *Dialect) BuildCreateTable(table sqlbuilder.TableRef, fields []schema.Field) (string, error) {
	return CreateTable(d, table, fields)
}

func (d *Dialect) BuildDropTable(table sqlbuilder.TableRef, opts dialect.DropOptions) string {
	b := sqlbuilder.New(d.rules)
	b.Append("DROP TABLE")
	if opts.IfExists {
		b.Append(" IF EXISTS")
	}
	b.Append(" ").AppendTable(table)
	if opts.Cascade {
		b.Append(" CASCADE")
	}
	return b.String()
}

func (d *Dialect) BuildAlterTable(table sqlbuilder.TableRef, fields []schema.Field) ([]string, error) {
	stmt, err := AlterAddColumns(d, table, fields)
	if err != nil {
		return nil, err
	}
	return []string{stmt}, nil
}

func (d *Dialect) BuildInsert(table sqlbuilder.TableRef, columns []sqlbuilder.ColumnRef) string {
	return Insert(d.rules, table, columns)
}

// BuildUpsert is not available generically: upsert syntax is one of the least
// portable corners of SQL, so each dialect must provide its own.
func (d *Dialect) BuildUpsert(table sqlbuilder.TableRef, keyColumns, nonKeyColumns []sqlbuilder.ColumnRef) (string, error) {
	return "", fmt.Errorf("%w: upsert for dialect %q", dialect.ErrUnsupportedOperation, d.Name())
}

// SQLTypeFor maps a field to a portable SQL column type. Byte arrays and
// composite types have no portable mapping and resolve to
// dialect.ErrUnsupportedType.
func SQLTypeFor(f schema.Field) (string, error) {
	switch f.Logical {
	case schema.LogicalDecimal:
		return fmt.Sprintf("DECIMAL(38,%d)", f.Scale), nil
	case schema.LogicalDate:
		return "DATE", nil
	case schema.LogicalTime:
		return "TIME", nil
	case schema.LogicalTimestamp:
		return "TIMESTAMP", nil
	}
	switch f.Type {
	case schema.TypeInt8:
		return "TINYINT", nil
	case schema.TypeInt16:
		return "SMALLINT", nil
	case schema.TypeInt32:
		return "INTEGER", nil
	case schema.TypeInt64:
		return "BIGINT", nil
	case schema.TypeFloat32:
		return "REAL", nil
	case schema.TypeFloat64:
		return "DOUBLE PRECISION", nil
	case schema.TypeBoolean:
		return "BOOLEAN", nil
	case schema.TypeString:
		return "VARCHAR(256)", nil
	}
	return "", fmt.Errorf("%w: %s", dialect.ErrUnsupportedType, f)
}

// SQLTypeCodeFor maps a field to its generic SQL type code, mirroring
// SQLTypeFor case for case.
func SQLTypeCodeFor(f schema.Field) (int, error) {
	switch f.Logical {
	case schema.LogicalDecimal:
		return sqltypes.Decimal, nil
	case schema.LogicalDate:
		return sqltypes.Date, nil
	case schema.LogicalTime:
		return sqltypes.Time, nil
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
		return sqltypes.Real, nil
	case schema.TypeFloat64:
		return sqltypes.Double, nil
	case schema.TypeBoolean:
		return sqltypes.Boolean, nil
	case schema.TypeString:
		return sqltypes.Varchar, nil
	}
	return 0, fmt.Errorf("%w: %s", dialect.ErrUnsupportedType, f)
}
