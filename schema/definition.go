package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Definition is the serialized form of a table.
//
//	table: users
//	columns:
//	  - name: id
//	    type: int
//	  - name: name
//	    type: text
type Definition struct {
	Table   string             `yaml:"table"`
	Columns []ColumnDefinition `yaml:"columns"`
}

// ColumnDefinition is the serialized form of a column.
type ColumnDefinition struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Build converts the definition into a table. Type spellings go through
// NormalizeType.
func (d Definition) Build() (*Table, error) {
	b := Define(d.Table)
	for _, c := range d.Columns {
		b.Column(c.Name, NormalizeType(c.Type))
	}
	return b.Build()
}

// DefinitionOf is the inverse of Definition.Build.
func DefinitionOf(t *Table) Definition {
	d := Definition{Table: t.Name()}
	for _, col := range t.columns {
		d.Columns = append(d.Columns, ColumnDefinition{Name: col.Name, Type: string(col.Type)})
	}
	return d
}

// ParseDefinition decodes a YAML table definition.
func ParseDefinition(data []byte) (*Table, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode table definition: %w", err)
	}
	return d.Build()
}

// MarshalDefinition encodes a table as YAML.
func MarshalDefinition(t *Table) ([]byte, error) {
	return yaml.Marshal(DefinitionOf(t))
}
