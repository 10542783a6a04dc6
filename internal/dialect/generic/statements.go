package generic

import (
	"fmt"
	"strings"

	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/dialect"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/schema"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/sqlbuilder"
)

// CreateTable generates a CREATE TABLE statement, resolving column types
// through d so that composing dialects get their own mappings.
func CreateTable(d dialect.Dialect, table sqlbuilder.TableRef, fields []schema.Field) (string, error) {
	b := sqlbuilder.New(d.IdentifierRules())
	b.Append("CREATE TABLE ").AppendTable(table).Append(" (")

	var keys []string
	for i, f := range fields {
		if i > 0 {
			b.Append(",")
		}
		b.Append("\n")
		if err := writeColumnSpec(b, d, f); err != nil {
			return "", err
		}
		if f.Key {
			keys = append(keys, f.Name)
		}
	}
	if len(keys) > 0 {
		b.Append(",\nPRIMARY KEY(")
		for i, k := range keys {
			if i > 0 {
				b.Append(",")
			}
			b.AppendIdentifier(k)
		}
		b.Append(")")
	}
	b.Append(")")
	return b.String(), nil
}

// AlterAddColumns generates a single ALTER TABLE statement adding every
// given column. Dialects limited to one column per statement call this once
// per field instead.
func AlterAddColumns(d dialect.Dialect, table sqlbuilder.TableRef, fields []schema.Field) (string, error) {
	b := sqlbuilder.New(d.IdentifierRules())
	b.Append("ALTER TABLE ").AppendTable(table).Append(" ADD ")
	for i, f := range fields {
		if i > 0 {
			b.Append(",\nADD ")
		}
		if err := writeColumnSpec(b, d, f); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Insert generates a positional-parameter INSERT over the given columns.
func Insert(rules sqlbuilder.IdentifierRules, table sqlbuilder.TableRef, columns []sqlbuilder.ColumnRef) string {
	b := sqlbuilder.New(rules)
	b.Append("INSERT INTO ").AppendTable(table).Append("(")
	b.AppendColumnList(",", sqlbuilder.ColumnNames(), columns)
	b.Append(") VALUES(")
	b.Append(strings.TrimSuffix(strings.Repeat("?,", len(columns)), ","))
	b.Append(")")
	return b.String()
}

// writeColumnSpec renders `"name" TYPE [DEFAULT lit | NOT NULL]`. A default
// value wins over the NOT NULL constraint, matching how sink connectors
// backfill newly added columns on existing rows.
func writeColumnSpec(b *sqlbuilder.Builder, d dialect.Dialect, f schema.Field) error {
	sqlType, err := d.SQLType(f)
	if err != nil {
		return err
	}
	b.AppendIdentifier(f.Name).Append(" ").Append(sqlType)
	if f.Default != nil {
		lit, err := formatLiteral(f.Default)
		if err != nil {
			return fmt.Errorf("default for column %q: %w", f.Name, err)
		}
		b.Append(" DEFAULT ").Append(lit)
	} else if !f.Optional {
		b.Append(" NOT NULL")
	}
	return nil
}

func formatLiteral(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'", nil
	case bool:
		if val {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(val), nil
	default:
		return "", fmt.Errorf("cannot render %T as a SQL literal", v)
	}
}
