package criteria

import (
	"fmt"
	"strings"
)

// Where is a single filter condition. Field is a raw column name; it is
// checked against a table only when the condition is rendered.
type Where struct {
	Field  string
	Op     FilterOp
	Values []any
}

// NewWhere creates a condition. The value list is copied.
func NewWhere(field string, op FilterOp, values ...any) Where {
	return Where{
		Field:  field,
		Op:     op,
		Values: append([]any(nil), values...),
	}
}

func (w Where) String() string {
	return fmt.Sprintf("%s %s %v", w.Field, w.Op, w.Values)
}

// WhereClause is an ordered list of conditions combined with AND.
type WhereClause struct {
	Conditions []Where
}

// NewWhereClause creates a WHERE clause from conditions.
func NewWhereClause(conditions ...Where) *WhereClause {
	return &WhereClause{Conditions: conditions}
}

// And appends a condition and returns the clause.
func (w *WhereClause) And(field string, op FilterOp, values ...any) *WhereClause {
	w.Conditions = append(w.Conditions, NewWhere(field, op, values...))
	return w
}

// IsEmpty returns true if the clause has no conditions.
func (w *WhereClause) IsEmpty() bool {
	return w == nil || len(w.Conditions) == 0
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection maps asc/desc in any case to a Direction. Anything else is ASC.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Sort orders results by a field.
type Sort struct {
	Field     string
	Direction Direction
}

// Page restricts the result window. Either bound may be nil.
type Page struct {
	Limit  *int
	Offset *int
}

// NewPage creates a page with both bounds set.
func NewPage(limit, offset int) *Page {
	return &Page{Limit: &limit, Offset: &offset}
}

// WithLimit creates a page with only a limit.
func WithLimit(limit int) *Page {
	return &Page{Limit: &limit}
}

// WithOffset creates a page with only an offset.
func WithOffset(offset int) *Page {
	return &Page{Offset: &offset}
}

// IsEmpty returns true if neither bound is set.
func (p *Page) IsEmpty() bool {
	return p == nil || (p.Limit == nil && p.Offset == nil)
}

// Criteria bundles the WHERE, ORDER BY and pagination of a SELECT.
// Every part is optional.
type Criteria struct {
	Where *WhereClause
	Sort  []Sort
	Page  *Page
}

// New creates empty criteria.
func New() *Criteria {
	return &Criteria{}
}

// Filter appends a condition.
func (c *Criteria) Filter(field string, op FilterOp, values ...any) *Criteria {
	if c.Where == nil {
		c.Where = NewWhereClause()
	}
	c.Where.And(field, op, values...)
	return c
}

// OrderBy appends a sort key.
func (c *Criteria) OrderBy(field string, dir Direction) *Criteria {
	c.Sort = append(c.Sort, Sort{Field: field, Direction: dir})
	return c
}

// Limit sets the page limit.
func (c *Criteria) Limit(n int) *Criteria {
	if c.Page == nil {
		c.Page = &Page{}
	}
	c.Page.Limit = &n
	return c
}

// Offset sets the page offset.
func (c *Criteria) Offset(n int) *Criteria {
	if c.Page == nil {
		c.Page = &Page{}
	}
	c.Page.Offset = &n
	return c
}
