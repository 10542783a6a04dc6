// Package sqltypes defines the JDBC-style generic SQL type codes used for
// column metadata introspection. The numeric values match java.sql.Types so
// that metadata produced here lines up with what JDBC-based tooling reports.
package sqltypes

const (
	Bit           = -7
	TinyInt       = -6
	SmallInt      = 5
	Integer       = 4
	BigInt        = -5
	Float         = 6
	Real          = 7
	Double        = 8
	Numeric       = 2
	Decimal       = 3
	Char          = 1
	Varchar       = 12
	LongVarchar   = -1
	Date          = 91
	Time          = 92
	Timestamp     = 93
	Binary        = -2
	VarBinary     = -3
	LongVarBinary = -4
	Boolean       = 16
	Blob          = 2004
	Clob          = 2005
)
