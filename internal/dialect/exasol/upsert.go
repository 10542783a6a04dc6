package exasol

import (
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/sqlbuilder"
)

// BuildUpsert generates an Exasol MERGE statement.
//
// The USING projection lists keyColumns then nonKeyColumns, each as a
// positional parameter aliased to the column name; the ON predicate matches
// on keyColumns only. The INSERT column and value lists both run
// nonKeyColumns then keyColumns. The two orders differ on purpose: within
// the INSERT clause the lists must only line up with each other, and bind
// order is defined by the USING projection alone.
//
// The WHEN MATCHED branch is omitted when nonKeyColumns is empty, since
// updating nothing but the match keys is a no-op.
//
// Precondition: keyColumns is non-empty. A MERGE without match columns is
// ill-formed; callers validate this, the builder does not.
func (d *Dialect) BuildUpsert(table sqlbuilder.TableRef, keyColumns, nonKeyColumns []sqlbuilder.ColumnRef) (string, error) {
	b := sqlbuilder.New(d.rules)
	b.Append("MERGE INTO ").AppendTable(table)
	b.Append(" AS target USING (SELECT ")
	b.AppendColumnList(", ", sqlbuilder.ColumnNamesWithPrefix("? AS "), keyColumns, nonKeyColumns)
	b.Append(") AS incoming ON (")
	b.AppendColumnList(" AND ", matchPredicate, keyColumns)
	b.Append(")")
	if len(nonKeyColumns) > 0 {
		b.Append(" WHEN MATCHED THEN UPDATE SET ")
		b.AppendColumnList(",", updateAssignment, nonKeyColumns)
	}
	b.Append(" WHEN NOT MATCHED THEN INSERT (")
	b.AppendColumnList(",", sqlbuilder.ColumnNames(), nonKeyColumns, keyColumns)
	b.Append(") VALUES (")
	b.AppendColumnList(",", sqlbuilder.ColumnNamesWithPrefix("incoming."), nonKeyColumns, keyColumns)
	b.Append(")")
	return b.String(), nil
}

// matchPredicate renders `target."col"=incoming."col"`.
func matchPredicate(b *sqlbuilder.Builder, col sqlbuilder.ColumnRef) {
	b.Append("target.").
		AppendIdentifier(col.Name).
		Append("=incoming.").
		AppendIdentifier(col.Name)
}

// updateAssignment renders `"col"=incoming."col"`.
func updateAssignment(b *sqlbuilder.Builder, col sqlbuilder.ColumnRef) {
	b.AppendIdentifier(col.Name).
		Append("=incoming.").
		AppendIdentifier(col.Name)
}
