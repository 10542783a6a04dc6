package exasol

import (
	"errors"
	"testing"

	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/config"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/dialect"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/schema"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/sqlbuilder"
	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/sqltypes"
)

func newDialect() *Dialect {
	return New(&config.Config{}, dialect.NewConnCache())
}

func TestSQLType(t *testing.T) {
	d := newDialect()

	tests := []struct {
		name  string
		field schema.Field
		want  string
	}{
		{"decimal", schema.Field{Name: "amount", Type: schema.TypeBytes, Logical: schema.LogicalDecimal, Scale: 2}, "DECIMAL(36,2)"},
		{"decimal scale zero", schema.Field{Name: "count", Type: schema.TypeBytes, Logical: schema.LogicalDecimal}, "DECIMAL(36,0)"},
		{"date", schema.Field{Name: "day", Type: schema.TypeInt32, Logical: schema.LogicalDate}, "DATE"},
		{"timestamp", schema.Field{Name: "ts", Type: schema.TypeInt64, Logical: schema.LogicalTimestamp}, "TIMESTAMP"},
		// Time of day has no Exasol type; it resolves through the primitive.
		{"time falls through", schema.Field{Name: "tod", Type: schema.TypeInt32, Logical: schema.LogicalTime}, "DECIMAL(10,0)"},
		{"int8", schema.Field{Name: "i", Type: schema.TypeInt8}, "DECIMAL(3,0)"},
		{"int16", schema.Field{Name: "i", Type: schema.TypeInt16}, "DECIMAL(5,0)"},
		{"int32", schema.Field{Name: "i", Type: schema.TypeInt32}, "DECIMAL(10,0)"},
		{"int64", schema.Field{Name: "i", Type: schema.TypeInt64}, "DECIMAL(19,0)"},
		{"float32", schema.Field{Name: "f", Type: schema.TypeFloat32}, "FLOAT"},
		{"float64", schema.Field{Name: "f", Type: schema.TypeFloat64}, "DOUBLE"},
		{"boolean", schema.Field{Name: "b", Type: schema.TypeBoolean}, "BOOLEAN"},
		{"string", schema.Field{Name: "s", Type: schema.TypeString}, "CLOB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.SQLType(tt.field)
			if err != nil {
				t.Fatalf("SQLType(%v) error: %v", tt.field, err)
			}
			if got != tt.want {
				t.Errorf("SQLType(%v) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestSQLTypeLogicalWinsOverPrimitive(t *testing.T) {
	d := newDialect()

	// The same logical type must resolve identically no matter which
	// primitive representation carries it.
	for _, primitive := range []schema.Type{schema.TypeBytes, schema.TypeString, schema.TypeInt64} {
		f := schema.Field{Name: "amount", Type: primitive, Logical: schema.LogicalDecimal, Scale: 4}
		got, err := d.SQLType(f)
		if err != nil {
			t.Fatalf("SQLType(%v) error: %v", f, err)
		}
		if got != "DECIMAL(36,4)" {
			t.Errorf("SQLType with primitive %v = %q, want DECIMAL(36,4)", primitive, got)
		}
	}
}

func TestSQLTypeUnsupported(t *testing.T) {
	d := newDialect()

	for _, f := range []schema.Field{
		{Name: "payload", Type: schema.TypeBytes},
		{Name: "nested", Type: schema.TypeStruct},
		{Name: "tags", Type: schema.TypeArray},
		{Name: "attrs", Type: schema.TypeMap},
	} {
		if _, err := d.SQLType(f); !errors.Is(err, dialect.ErrUnsupportedType) {
			t.Errorf("SQLType(%v) error = %v, want ErrUnsupportedType", f, err)
		}
		if _, err := d.SQLTypeCode(f); !errors.Is(err, dialect.ErrUnsupportedType) {
			t.Errorf("SQLTypeCode(%v) error = %v, want ErrUnsupportedType", f, err)
		}
	}
}

func TestSQLTypeCode(t *testing.T) {
	d := newDialect()

	tests := []struct {
		name  string
		field schema.Field
		want  int
	}{
		{"decimal", schema.Field{Name: "n", Type: schema.TypeBytes, Logical: schema.LogicalDecimal, Scale: 2}, sqltypes.Decimal},
		{"date", schema.Field{Name: "d", Type: schema.TypeInt32, Logical: schema.LogicalDate}, sqltypes.Date},
		{"timestamp", schema.Field{Name: "ts", Type: schema.TypeInt64, Logical: schema.LogicalTimestamp}, sqltypes.Timestamp},
		{"time falls through", schema.Field{Name: "tod", Type: schema.TypeInt32, Logical: schema.LogicalTime}, sqltypes.Integer},
		{"int8", schema.Field{Name: "i", Type: schema.TypeInt8}, sqltypes.TinyInt},
		{"int16", schema.Field{Name: "i", Type: schema.TypeInt16}, sqltypes.SmallInt},
		{"int32", schema.Field{Name: "i", Type: schema.TypeInt32}, sqltypes.Integer},
		{"int64", schema.Field{Name: "i", Type: schema.TypeInt64}, sqltypes.BigInt},
		{"float32", schema.Field{Name: "f", Type: schema.TypeFloat32}, sqltypes.Float},
		{"float64", schema.Field{Name: "f", Type: schema.TypeFloat64}, sqltypes.Double},
		{"boolean", schema.Field{Name: "b", Type: schema.TypeBoolean}, sqltypes.Boolean},
		{"string", schema.Field{Name: "s", Type: schema.TypeString}, sqltypes.Varchar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.SQLTypeCode(tt.field)
			if err != nil {
				t.Fatalf("SQLTypeCode(%v) error: %v", tt.field, err)
			}
			if got != tt.want {
				t.Errorf("SQLTypeCode(%v) = %d, want %d", tt.field, got, tt.want)
			}
		})
	}
}

func TestBuildDropTable(t *testing.T) {
	d := newDialect()
	table := sqlbuilder.NewTable("myTable")

	tests := []struct {
		name string
		opts dialect.DropOptions
		want string
	}{
		{"plain", dialect.DropOptions{}, `DROP TABLE "myTable"`},
		{"if exists", dialect.DropOptions{IfExists: true}, `DROP TABLE IF EXISTS "myTable"`},
		{"cascade", dialect.DropOptions{Cascade: true}, `DROP TABLE "myTable" CASCADE CONSTRAINTS`},
		{"both", dialect.DropOptions{IfExists: true, Cascade: true}, `DROP TABLE IF EXISTS "myTable" CASCADE CONSTRAINTS`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.BuildDropTable(table, tt.opts); got != tt.want {
				t.Errorf("BuildDropTable() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildAlterTable(t *testing.T) {
	d := newDialect()
	table := sqlbuilder.TableRef{Schema: "retail", Name: "orders"}
	fields := []schema.Field{
		{Name: "total", Type: schema.TypeInt64},
		{Name: "note", Type: schema.TypeString, Optional: true},
	}

	got, err := d.BuildAlterTable(table, fields)
	if err != nil {
		t.Fatalf("BuildAlterTable() error: %v", err)
	}

	want := []string{
		`ALTER TABLE "retail"."orders" ADD "total" DECIMAL(19,0) NOT NULL`,
		`ALTER TABLE "retail"."orders" ADD "note" CLOB`,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d statements, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("statement %d = %q, want %q", i, got[i], want[i])
		}
	}

	// One field at a time must give the same statements.
	for i, f := range fields {
		single, err := d.BuildAlterTable(table, []schema.Field{f})
		if err != nil {
			t.Fatalf("BuildAlterTable(single) error: %v", err)
		}
		if len(single) != 1 || single[0] != want[i] {
			t.Errorf("single-field alter = %v, want [%q]", single, want[i])
		}
	}
}

func TestBuildAlterTableUnsupportedField(t *testing.T) {
	d := newDialect()
	fields := []schema.Field{
		{Name: "ok", Type: schema.TypeInt32},
		{Name: "blob", Type: schema.TypeBytes},
	}
	if _, err := d.BuildAlterTable(sqlbuilder.NewTable("t"), fields); !errors.Is(err, dialect.ErrUnsupportedType) {
		t.Errorf("BuildAlterTable() error = %v, want ErrUnsupportedType", err)
	}
}

func TestBuildCreateTable(t *testing.T) {
	d := newDialect()
	table := sqlbuilder.NewTable("orders")
	fields := []schema.Field{
		{Name: "order_id", Type: schema.TypeInt64, Key: true},
		{Name: "amount", Type: schema.TypeBytes, Logical: schema.LogicalDecimal, Scale: 2},
		{Name: "note", Type: schema.TypeString, Optional: true},
	}

	got, err := d.BuildCreateTable(table, fields)
	if err != nil {
		t.Fatalf("BuildCreateTable() error: %v", err)
	}
	want := `CREATE TABLE "orders" (` + "\n" +
		`"order_id" DECIMAL(19,0) NOT NULL,` + "\n" +
		`"amount" DECIMAL(36,2) NOT NULL,` + "\n" +
		`"note" CLOB,` + "\n" +
		`PRIMARY KEY("order_id"))`
	if got != want {
		t.Errorf("BuildCreateTable() = %q, want %q", got, want)
	}
}

func TestBuildInsert(t *testing.T) {
	d := newDialect()
	table := sqlbuilder.NewTable("orders")
	cols := sqlbuilder.Columns(table, "order_id", "amount")

	got := d.BuildInsert(table, cols)
	want := `INSERT INTO "orders"("order_id","amount") VALUES(?,?)`
	if got != want {
		t.Errorf("BuildInsert() = %q, want %q", got, want)
	}
}
