// Package composer builds complete SELECT, INSERT, UPDATE and DELETE
// statements for a table, either with inline literals or with bind
// parameters.
//
// Keys, fields and sort keys that name columns the table does not declare
// are dropped. Columns are always emitted in the table's declared order.
package composer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/satishbabariya/sqlcomposer/internal/debug"
	"github.com/satishbabariya/sqlcomposer/query/criteria"
	"github.com/satishbabariya/sqlcomposer/query/sqlgen"
	"github.com/satishbabariya/sqlcomposer/schema"
)

var (
	// ErrNoColumns is returned by Select when none of the requested
	// columns exist on the table.
	ErrNoColumns = errors.New("no columns to select")

	// ErrEmptyWhere is returned by the conditional UPDATE and DELETE forms
	// when no condition survives filtering.
	ErrEmptyWhere = errors.New("conditional statement has no applicable conditions")
)

// Composer emits statements for one table. It holds no mutable state.
type Composer struct {
	tr    sqlgen.Translator
	table *schema.Table
}

// New creates a composer for table using tr's dialect.
func New(tr sqlgen.Translator, table *schema.Table) *Composer {
	return &Composer{tr: tr, table: table}
}

// Table returns the composer's table.
func (c *Composer) Table() *schema.Table { return c.table }

// Translator returns the composer's translator.
func (c *Composer) Translator() sqlgen.Translator { return c.tr }

// SelectQuery describes a SELECT. Every field is optional.
type SelectQuery struct {
	// Columns to select. Empty selects every column.
	Columns []string
	// Alias names the table in the FROM clause and qualifies every column
	// reference.
	Alias    string
	Criteria *criteria.Criteria
}

// Select renders a SELECT with inline literals.
func (c *Composer) Select(q SelectQuery) (string, error) {
	head, err := c.selectHead(q)
	if err != nil {
		return "", err
	}

	suffix, err := c.assembler(q.Alias).Assemble(q.Criteria, c.table)
	if err != nil {
		return "", fmt.Errorf("select from %s: %w", c.table.Name(), err)
	}

	sql := join(head, suffix)
	debug.Statement("select", c.table.Name(), sql, nil)
	return sql, nil
}

// SelectParams renders a SELECT with bind parameters for every WHERE and
// pagination value.
func (c *Composer) SelectParams(q SelectQuery) (sqlgen.Query, error) {
	head, err := c.selectHead(q)
	if err != nil {
		return sqlgen.Query{}, err
	}

	suffix, err := c.assembler(q.Alias).AssembleParameterized(q.Criteria, c.table)
	if err != nil {
		return sqlgen.Query{}, fmt.Errorf("select from %s: %w", c.table.Name(), err)
	}

	query := sqlgen.Query{SQL: join(head, suffix.SQL), Args: suffix.Args}
	debug.Statement("select", c.table.Name(), query.SQL, query.Args)
	return query, nil
}

func (c *Composer) selectHead(q SelectQuery) (string, error) {
	names := c.table.ColumnNames()
	if len(q.Columns) > 0 {
		wanted := make(map[string]bool, len(q.Columns))
		for _, name := range q.Columns {
			wanted[name] = true
		}
		names = names[:0]
		for _, name := range c.table.ColumnNames() {
			if wanted[name] {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("select from %s: %w", c.table.Name(), ErrNoColumns)
	}

	if q.Alias != "" {
		for i, name := range names {
			names[i] = q.Alias + "." + name
		}
	}

	from := c.table.Name()
	if q.Alias != "" {
		from += " AS " + q.Alias
	}

	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), from), nil
}

// Insert renders an INSERT with inline literals. It returns an empty string
// when no key names a column.
func (c *Composer) Insert(values map[string]any) string {
	cols := c.known(values)
	if len(cols) == 0 {
		return ""
	}

	literals := make([]string, len(cols))
	for i, col := range cols {
		literals[i] = c.tr.FormatValue(col, values[col.Name])
	}

	sql := c.insert(cols, literals)
	debug.Statement("insert", c.table.Name(), sql, nil)
	return sql
}

// InsertParams renders an INSERT with one placeholder per column. It
// returns an empty query with an empty argument list when no key names a
// column.
func (c *Composer) InsertParams(values map[string]any) sqlgen.Query {
	cols := c.known(values)
	if len(cols) == 0 {
		return sqlgen.Query{SQL: "", Args: []any{}}
	}

	args := c.tr.NewArgs()
	placeholders := make([]string, len(cols))
	for i, col := range cols {
		placeholders[i] = args.Add(values[col.Name])
	}

	query := sqlgen.Query{SQL: c.insert(cols, placeholders), Args: args.Values()}
	debug.Statement("insert", c.table.Name(), query.SQL, query.Args)
	return query
}

func (c *Composer) insert(cols []schema.Column, operands []string) string {
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		c.table.Name(), strings.Join(names, ", "), strings.Join(operands, ", "))
}

// Update renders an unconditional UPDATE with inline literals. It returns
// an empty string when no key names a column.
func (c *Composer) Update(values map[string]any) string {
	sql := c.set(values, nil)
	if sql != "" {
		debug.Statement("update", c.table.Name(), sql, nil)
	}
	return sql
}

// UpdateParams renders an unconditional UPDATE with bind parameters.
func (c *Composer) UpdateParams(values map[string]any) sqlgen.Query {
	args := c.tr.NewArgs()
	sql := c.set(values, args)
	if sql == "" {
		return sqlgen.Query{SQL: "", Args: []any{}}
	}

	query := sqlgen.Query{SQL: sql, Args: args.Values()}
	debug.Statement("update", c.table.Name(), query.SQL, query.Args)
	return query
}

// UpdateWhere renders an UPDATE restricted by where. It returns an empty
// string when no key names a column and ErrEmptyWhere when no condition
// names a column.
func (c *Composer) UpdateWhere(values map[string]any, where *criteria.WhereClause) (string, error) {
	head := c.set(values, nil)
	if head == "" {
		return "", nil
	}

	clause, err := c.assembler("").AssembleWhere(where, c.table)
	if err != nil {
		return "", fmt.Errorf("update %s: %w", c.table.Name(), err)
	}
	if clause == "" {
		return "", fmt.Errorf("update %s: %w", c.table.Name(), ErrEmptyWhere)
	}

	sql := join(head, clause)
	debug.Statement("update", c.table.Name(), sql, nil)
	return sql, nil
}

// UpdateWhereParams is the parameterized form of UpdateWhere. SET values
// are bound before WHERE values.
func (c *Composer) UpdateWhereParams(values map[string]any, where *criteria.WhereClause) (sqlgen.Query, error) {
	args := c.tr.NewArgs()
	head := c.set(values, args)
	if head == "" {
		return sqlgen.Query{SQL: "", Args: []any{}}, nil
	}

	clause, err := c.assembler("").AssembleWhereInto(where, c.table, args)
	if err != nil {
		return sqlgen.Query{}, fmt.Errorf("update %s: %w", c.table.Name(), err)
	}
	if clause == "" {
		return sqlgen.Query{}, fmt.Errorf("update %s: %w", c.table.Name(), ErrEmptyWhere)
	}

	query := sqlgen.Query{SQL: join(head, clause), Args: args.Values()}
	debug.Statement("update", c.table.Name(), query.SQL, query.Args)
	return query, nil
}

// set renders UPDATE ... SET. args == nil selects inline literals.
func (c *Composer) set(values map[string]any, args *sqlgen.Args) string {
	cols := c.known(values)
	if len(cols) == 0 {
		return ""
	}

	assignments := make([]string, len(cols))
	for i, col := range cols {
		var operand string
		if args == nil {
			operand = c.tr.FormatValue(col, values[col.Name])
		} else {
			operand = args.Add(values[col.Name])
		}
		assignments[i] = fmt.Sprintf("%s = %s", col.Name, operand)
	}
	return fmt.Sprintf("UPDATE %s SET %s", c.table.Name(), strings.Join(assignments, ", "))
}

// Delete renders an unconditional DELETE.
func (c *Composer) Delete() string {
	sql := "DELETE FROM " + c.table.Name()
	debug.Statement("delete", c.table.Name(), sql, nil)
	return sql
}

// DeleteWhere renders a DELETE restricted by where. It returns
// ErrEmptyWhere rather than an unconditional DELETE when no condition names
// a column.
func (c *Composer) DeleteWhere(where *criteria.WhereClause) (string, error) {
	clause, err := c.assembler("").AssembleWhere(where, c.table)
	if err != nil {
		return "", fmt.Errorf("delete from %s: %w", c.table.Name(), err)
	}
	if clause == "" {
		return "", fmt.Errorf("delete from %s: %w", c.table.Name(), ErrEmptyWhere)
	}

	sql := join("DELETE FROM "+c.table.Name(), clause)
	debug.Statement("delete", c.table.Name(), sql, nil)
	return sql, nil
}

// DeleteWhereParams is the parameterized form of DeleteWhere.
func (c *Composer) DeleteWhereParams(where *criteria.WhereClause) (sqlgen.Query, error) {
	args := c.tr.NewArgs()
	clause, err := c.assembler("").AssembleWhereInto(where, c.table, args)
	if err != nil {
		return sqlgen.Query{}, fmt.Errorf("delete from %s: %w", c.table.Name(), err)
	}
	if clause == "" {
		return sqlgen.Query{}, fmt.Errorf("delete from %s: %w", c.table.Name(), ErrEmptyWhere)
	}

	query := sqlgen.Query{SQL: join("DELETE FROM "+c.table.Name(), clause), Args: args.Values()}
	debug.Statement("delete", c.table.Name(), query.SQL, query.Args)
	return query, nil
}

func (c *Composer) assembler(alias string) *sqlgen.Assembler {
	if alias == "" {
		return sqlgen.NewAssembler(c.tr)
	}
	return sqlgen.NewAssembler(c.tr, sqlgen.WithQualifier(alias))
}

// known returns the table columns present in values, in table order.
func (c *Composer) known(values map[string]any) []schema.Column {
	if len(values) == 0 {
		return nil
	}
	var cols []schema.Column
	for _, col := range c.table.Columns() {
		if _, ok := values[col.Name]; ok {
			cols = append(cols, col)
		}
	}
	return cols
}

func join(head, suffix string) string {
	if suffix == "" {
		return head
	}
	return head + " " + suffix
}
