// Package dialect defines the database dialect abstraction: SQL type
// resolution, DDL/DML statement generation, and connection handling for one
// target database. Concrete dialects live in subpackages and register
// themselves through the provider registry.
package dialect

import (
	"context"
	"database/sql"
	"errors"

	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/schema"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/sqlbuilder"
)

var (
	// ErrUnsupportedType reports a field type with no SQL mapping in the
	// dialect. Callers must treat this as fatal for the field; there is no
	// plausible default to fall back to.
	ErrUnsupportedType = errors.New("field type has no SQL mapping")

	// ErrUnsupportedOperation reports a statement kind the dialect cannot
	// generate.
	ErrUnsupportedOperation = errors.New("statement not supported by dialect")

	// ErrUnknownDialect reports a dialect name or URL subprotocol with no
	// registered provider.
	ErrUnknownDialect = errors.New("unknown dialect")
)

// DropOptions modifies the wording of a DROP TABLE statement. The flags are
// independent; any combination is valid.
type DropOptions struct {
	IfExists bool
	Cascade  bool
}

// Dialect generates SQL statement text and manages connections for one
// target database. Statement generation is pure and safe for concurrent use;
// only Connection may block.
type Dialect interface {
	// Name returns the dialect name, e.g. "exasol".
	Name() string

	// IdentifierRules returns the quoting rules for this dialect.
	IdentifierRules() sqlbuilder.IdentifierRules

	// SQLType resolves a field to the dialect's native column type for DDL.
	// A field's logical type, when present, takes precedence over its
	// primitive type.
	SQLType(f schema.Field) (string, error)

	// SQLTypeCode resolves a field to the generic SQL type code used for
	// metadata introspection, following the same precedence as SQLType.
	SQLTypeCode(f schema.Field) (int, error)

	// BuildCreateTable generates a CREATE TABLE statement with a PRIMARY KEY
	// clause over the key fields.
	BuildCreateTable(table sqlbuilder.TableRef, fields []schema.Field) (string, error)

	// BuildDropTable generates a DROP TABLE statement.
	BuildDropTable(table sqlbuilder.TableRef, opts DropOptions) string

	// BuildAlterTable generates the statements that add the given columns to
	// an existing table, in field order. Dialects that cannot add several
	// columns in one statement return one statement per field.
	BuildAlterTable(table sqlbuilder.TableRef, fields []schema.Field) ([]string, error)

	// BuildInsert generates a parameterized INSERT over the given columns.
	BuildInsert(table sqlbuilder.TableRef, columns []sqlbuilder.ColumnRef) string

	// BuildUpsert generates a single statement that inserts a row when no
	// matching key exists and updates it otherwise. keyColumns must be
	// non-empty; this is a caller obligation and is not validated here.
	BuildUpsert(table sqlbuilder.TableRef, keyColumns, nonKeyColumns []sqlbuilder.ColumnRef) (string, error)

	// Connection returns a usable database handle, creating it on first use.
	Connection(ctx context.Context) (*sql.DB, error)

	// Close releases resources held by the dialect. Implementations that
	// share connections across callers may choose not to close them.
	Close() error
}
