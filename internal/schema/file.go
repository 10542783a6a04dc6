package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TableSchema is a table definition loaded from a YAML schema file.
type TableSchema struct {
	Catalog string
	Schema  string
	Table   string
	Fields  []Field
}

// KeyFields returns the fields marked as part of the record key, in input order.
func (t *TableSchema) KeyFields() []Field {
	var keys []Field
	for _, f := range t.Fields {
		if f.Key {
			keys = append(keys, f)
		}
	}
	return keys
}

// NonKeyFields returns the fields not part of the record key, in input order.
func (t *TableSchema) NonKeyFields() []Field {
	var rest []Field
	for _, f := range t.Fields {
		if !f.Key {
			rest = append(rest, f)
		}
	}
	return rest
}

type fileSchema struct {
	Catalog string      `yaml:"catalog"`
	Schema  string      `yaml:"schema"`
	Table   string      `yaml:"table"`
	Fields  []fileField `yaml:"fields"`
}

type fileField struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Logical  string `yaml:"logical"`
	Scale    int    `yaml:"scale"`
	Optional bool   `yaml:"optional"`
	Key      bool   `yaml:"key"`
	Default  any    `yaml:"default"`
}

// LoadFile reads a table schema from a YAML file.
func LoadFile(path string) (*TableSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a table schema from YAML.
func Parse(data []byte) (*TableSchema, error) {
	var fs fileSchema
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parsing schema file: %w", err)
	}
	if fs.Table == "" {
		return nil, fmt.Errorf("schema file missing table name")
	}
	if len(fs.Fields) == 0 {
		return nil, fmt.Errorf("schema file defines no fields")
	}

	ts := &TableSchema{Catalog: fs.Catalog, Schema: fs.Schema, Table: fs.Table}
	for i, ff := range fs.Fields {
		if ff.Name == "" {
			return nil, fmt.Errorf("field %d has no name", i)
		}
		typ, err := ParseType(ff.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", ff.Name, err)
		}
		logical, err := ParseLogical(ff.Logical)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", ff.Name, err)
		}
		ts.Fields = append(ts.Fields, Field{
			Name:     ff.Name,
			Type:     typ,
			Logical:  logical,
			Scale:    ff.Scale,
			Optional: ff.Optional,
			Key:      ff.Key,
			Default:  ff.Default,
		})
	}
	return ts, nil
}
