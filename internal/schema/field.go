// Package schema models the logical, database-agnostic shape of a record
// field: a primitive wire type plus an optional richer logical type.
package schema

import "fmt"

// Type is the primitive encoding type of a field.
type Type int

const (
	TypeUnknown Type = iota
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeBoolean
	TypeString
	TypeBytes
	TypeStruct
	TypeMap
	TypeArray
)

var typeNames = map[Type]string{
	TypeUnknown: "unknown",
	TypeInt8:    "int8",
	TypeInt16:   "int16",
	TypeInt32:   "int32",
	TypeInt64:   "int64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
	TypeBoolean: "boolean",
	TypeString:  "string",
	TypeBytes:   "bytes",
	TypeStruct:  "struct",
	TypeMap:     "map",
	TypeArray:   "array",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType converts a type name as it appears in schema files into a Type.
func ParseType(s string) (Type, error) {
	for t, n := range typeNames {
		if n == s && t != TypeUnknown {
			return t, nil
		}
	}
	return TypeUnknown, fmt.Errorf("unknown field type: %q", s)
}

// Logical is a semantic type annotation richer than the primitive type.
// When a field carries one, it governs type resolution; LogicalNone means
// the primitive type alone applies.
type Logical int

const (
	// LogicalNone marks a field with no logical annotation.
	LogicalNone Logical = iota
	// LogicalDecimal is a fixed-point decimal; the field's Scale applies.
	LogicalDecimal
	// LogicalDate is a calendar date with no time component.
	LogicalDate
	// LogicalTime is a time of day with no date component.
	LogicalTime
	// LogicalTimestamp is a point in time.
	LogicalTimestamp
)

var logicalNames = map[Logical]string{
	LogicalNone:      "",
	LogicalDecimal:   "decimal",
	LogicalDate:      "date",
	LogicalTime:      "time",
	LogicalTimestamp: "timestamp",
}

func (l Logical) String() string {
	if n, ok := logicalNames[l]; ok {
		return n
	}
	return fmt.Sprintf("Logical(%d)", int(l))
}

// ParseLogical converts a logical type name into a Logical. The empty string
// parses to LogicalNone.
func ParseLogical(s string) (Logical, error) {
	for l, n := range logicalNames {
		if n == s {
			return l, nil
		}
	}
	return LogicalNone, fmt.Errorf("unknown logical type: %q", s)
}

// Field describes one column of a logical record schema.
type Field struct {
	Name     string
	Type     Type
	Logical  Logical
	Scale    int  // decimal scale, meaningful when Logical is LogicalDecimal
	Optional bool // nullable in the target table
	Key      bool // part of the record key
	Default  any  // default value literal, nil when absent
}

// HasLogical reports whether the field carries a logical type annotation.
func (f Field) HasLogical() bool {
	return f.Logical != LogicalNone
}

// String renders the field for error messages, e.g. "ts (int64, timestamp)".
func (f Field) String() string {
	if f.HasLogical() {
		return fmt.Sprintf("%s (%s, %s)", f.Name, f.Type, f.Logical)
	}
	return fmt.Sprintf("%s (%s)", f.Name, f.Type)
}
