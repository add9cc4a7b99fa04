// Package columns provides typed column handles that build WHERE
// conditions.
//
//	age := columns.NewIntColumn("age")
//	name := columns.NewStringColumn("name")
//	where := columns.Where(age.GT(25), name.StartsWith("J"))
package columns

import (
	"time"

	"github.com/satishbabariya/sqlcomposer/query/criteria"
	"github.com/satishbabariya/sqlcomposer/schema"
)

// Condition is one typed condition.
type Condition = criteria.Where

// Where joins conditions with AND.
func Where(conds ...Condition) *criteria.WhereClause {
	return criteria.NewWhereClause(conds...)
}

// BaseColumn is the base implementation for all column types
type BaseColumn struct {
	name string
	typ  schema.DataType
}

// Name returns the column name
func (c BaseColumn) Name() string {
	return c.name
}

// Column returns the schema column the handle describes.
func (c BaseColumn) Column() schema.Column {
	return schema.Column{Name: c.name, Type: c.typ}
}

func (c BaseColumn) cond(op criteria.FilterOp, values ...any) Condition {
	return criteria.NewWhere(c.name, op, values...)
}

// IsNull matches rows where the column is NULL.
func (c BaseColumn) IsNull() Condition { return c.cond(criteria.IsNull) }

// IsNotNull matches rows where the column is not NULL.
func (c BaseColumn) IsNotNull() Condition { return c.cond(criteria.IsNotNull) }

// IntColumn represents an integer column
type IntColumn struct{ BaseColumn }

// NewIntColumn creates an integer column handle
func NewIntColumn(name string) IntColumn {
	return IntColumn{BaseColumn{name: name, typ: schema.Int}}
}

func (c IntColumn) EQ(v int64) Condition     { return c.cond(criteria.Equal, v) }
func (c IntColumn) NOT_EQ(v int64) Condition { return c.cond(criteria.NotEqual, v) }
func (c IntColumn) GT(v int64) Condition     { return c.cond(criteria.GreaterThan, v) }
func (c IntColumn) GTE(v int64) Condition    { return c.cond(criteria.GreaterThanOrEqual, v) }
func (c IntColumn) LT(v int64) Condition     { return c.cond(criteria.LessThan, v) }
func (c IntColumn) LTE(v int64) Condition    { return c.cond(criteria.LessThanOrEqual, v) }

// Between matches lo <= column <= hi.
func (c IntColumn) Between(lo, hi int64) Condition { return c.cond(criteria.Between, lo, hi) }

func (c IntColumn) IN(values ...int64) Condition     { return c.cond(criteria.In, anys(values)...) }
func (c IntColumn) NOT_IN(values ...int64) Condition { return c.cond(criteria.NotIn, anys(values)...) }

// FloatColumn represents a floating point column
type FloatColumn struct{ BaseColumn }

// NewFloatColumn creates a double precision column handle
func NewFloatColumn(name string) FloatColumn {
	return FloatColumn{BaseColumn{name: name, typ: schema.DoublePrecision}}
}

func (c FloatColumn) EQ(v float64) Condition  { return c.cond(criteria.Equal, v) }
func (c FloatColumn) GT(v float64) Condition  { return c.cond(criteria.GreaterThan, v) }
func (c FloatColumn) GTE(v float64) Condition { return c.cond(criteria.GreaterThanOrEqual, v) }
func (c FloatColumn) LT(v float64) Condition  { return c.cond(criteria.LessThan, v) }
func (c FloatColumn) LTE(v float64) Condition { return c.cond(criteria.LessThanOrEqual, v) }

func (c FloatColumn) Between(lo, hi float64) Condition { return c.cond(criteria.Between, lo, hi) }

// StringColumn represents a text column
type StringColumn struct{ BaseColumn }

// NewStringColumn creates a text column handle
func NewStringColumn(name string) StringColumn {
	return StringColumn{BaseColumn{name: name, typ: schema.Text}}
}

func (c StringColumn) EQ(v string) Condition     { return c.cond(criteria.Equal, v) }
func (c StringColumn) NOT_EQ(v string) Condition { return c.cond(criteria.NotEqual, v) }

// Like matches a LIKE pattern as given.
func (c StringColumn) Like(pattern string) Condition { return c.cond(criteria.Like, pattern) }

// Contains, StartsWith and EndsWith wrap v in LIKE wildcards. Wildcards
// inside v keep their meaning.
func (c StringColumn) Contains(v string) Condition   { return c.cond(criteria.Like, "%"+v+"%") }
func (c StringColumn) StartsWith(v string) Condition { return c.cond(criteria.Like, v+"%") }
func (c StringColumn) EndsWith(v string) Condition   { return c.cond(criteria.Like, "%"+v) }

func (c StringColumn) IN(values ...string) Condition     { return c.cond(criteria.In, anys(values)...) }
func (c StringColumn) NOT_IN(values ...string) Condition { return c.cond(criteria.NotIn, anys(values)...) }

// BoolColumn represents a boolean column
type BoolColumn struct{ BaseColumn }

// NewBoolColumn creates a boolean column handle
func NewBoolColumn(name string) BoolColumn {
	return BoolColumn{BaseColumn{name: name, typ: schema.Boolean}}
}

func (c BoolColumn) EQ(v bool) Condition     { return c.cond(criteria.Equal, v) }
func (c BoolColumn) NOT_EQ(v bool) Condition { return c.cond(criteria.NotEqual, v) }

// DateTimeColumn represents a timestamp column
type DateTimeColumn struct{ BaseColumn }

// NewDateTimeColumn creates a timestamp column handle. With tz set the
// column is timestamptz.
func NewDateTimeColumn(name string, tz bool) DateTimeColumn {
	typ := schema.Timestamp
	if tz {
		typ = schema.Timestamptz
	}
	return DateTimeColumn{BaseColumn{name: name, typ: typ}}
}

func (c DateTimeColumn) EQ(v time.Time) Condition  { return c.cond(criteria.Equal, v) }
func (c DateTimeColumn) GT(v time.Time) Condition  { return c.cond(criteria.GreaterThan, v) }
func (c DateTimeColumn) GTE(v time.Time) Condition { return c.cond(criteria.GreaterThanOrEqual, v) }
func (c DateTimeColumn) LT(v time.Time) Condition  { return c.cond(criteria.LessThan, v) }
func (c DateTimeColumn) LTE(v time.Time) Condition { return c.cond(criteria.LessThanOrEqual, v) }

// Between matches from <= column <= to.
func (c DateTimeColumn) Between(from, to time.Time) Condition {
	return c.cond(criteria.Between, from, to)
}

// Table builds a schema table from column handles.
func Table(name string, cols ...interface{ Column() schema.Column }) (*schema.Table, error) {
	defs := make([]schema.Column, len(cols))
	for i, c := range cols {
		defs[i] = c.Column()
	}
	return schema.NewTable(name, defs...)
}

func anys[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

