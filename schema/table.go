package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when a table or column has no name.
	ErrEmptyName = errors.New("empty name")

	// ErrDuplicateColumn is returned when a table declares a column twice.
	ErrDuplicateColumn = errors.New("duplicate column")
)

// Column is a named, typed table column.
type Column struct {
	Name string
	Type DataType
}

// Table is an immutable table description. Build it with NewTable or Define.
// A *Table is safe for concurrent use.
type Table struct {
	name    string
	columns []Column
	index   map[string]int
}

// NewTable validates the column list and returns the table.
func NewTable(name string, columns ...Column) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("table: %w", ErrEmptyName)
	}

	t := &Table{
		name:    name,
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column of table %s: %w", name, ErrEmptyName)
		}
		if _, ok := t.index[col.Name]; ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateColumn, name, col.Name)
		}
		t.index[col.Name] = len(t.columns)
		t.columns = append(t.columns, col)
	}
	return t, nil
}

// MustTable is like NewTable but panics on error. Meant for package-level
// table declarations.
func MustTable(name string, columns ...Column) *Table {
	t, err := NewTable(name, columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Columns returns a copy of the columns in declaration order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Has reports whether the table declares the column.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of columns.
func (t *Table) Len() int { return len(t.columns) }

// Builder declares a table one column at a time.
//
//	users := schema.Define("users").
//		Column("id", schema.Int).
//		Column("name", schema.Text).
//		MustBuild()
type Builder struct {
	name    string
	columns []Column
}

// Define starts a table declaration.
func Define(name string) *Builder {
	return &Builder{name: name}
}

// Column appends a column.
func (b *Builder) Column(name string, typ DataType) *Builder {
	b.columns = append(b.columns, Column{Name: name, Type: typ})
	return b
}

// Build validates the declaration and returns the table.
func (b *Builder) Build() (*Table, error) {
	return NewTable(b.name, b.columns...)
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Table {
	return MustTable(b.name, b.columns...)
}
