package sqlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/satishbabariya/sqlcomposer/query/criteria"
	"github.com/satishbabariya/sqlcomposer/schema"
)

// RenderSort renders an ORDER BY key. Directions other than DESC are ASC.
func (t *SQLTranslator) RenderSort(s criteria.Sort) string {
	direction := criteria.Asc
	if strings.EqualFold(string(s.Direction), string(criteria.Desc)) {
		direction = criteria.Desc
	}
	return fmt.Sprintf("%s %s", s.Field, direction)
}

// RenderPage renders LIMIT and OFFSET with inline numbers. It returns an
// empty string when neither bound is set.
func (t *SQLTranslator) RenderPage(p *criteria.Page) (string, error) {
	return t.renderPage(p, strconv.Itoa)
}

// RenderPageParams renders LIMIT and OFFSET with bound values.
func (t *SQLTranslator) RenderPageParams(p *criteria.Page, args *Args) (string, error) {
	return t.renderPage(p, func(n int) string { return args.Add(n) })
}

func (t *SQLTranslator) renderPage(p *criteria.Page, operand func(int) string) (string, error) {
	if p.IsEmpty() {
		return "", nil
	}
	if (p.Limit != nil && *p.Limit < 0) || (p.Offset != nil && *p.Offset < 0) {
		return "", ErrNegativePage
	}

	var parts []string

	// LIMIT
	if p.Limit != nil {
		parts = append(parts, "LIMIT "+operand(*p.Limit))
	} else if t.rules.offsetOnlyLimit != "" {
		parts = append(parts, "LIMIT "+t.rules.offsetOnlyLimit)
	}

	// OFFSET
	if p.Offset != nil {
		parts = append(parts, "OFFSET "+operand(*p.Offset))
	}

	return strings.Join(parts, " "), nil
}

// Assembler builds the WHERE ... ORDER BY ... LIMIT ... OFFSET suffix of a
// statement. Conditions and sort keys naming columns the table does not
// have are dropped.
type Assembler struct {
	tr        Translator
	qualifier string
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithQualifier prefixes every column reference with alias.
func WithQualifier(alias string) AssemblerOption {
	return func(a *Assembler) {
		a.qualifier = alias
	}
}

// NewAssembler creates an assembler backed by tr.
func NewAssembler(tr Translator, opts ...AssemblerOption) *Assembler {
	a := &Assembler{tr: tr}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Translator returns the assembler's translator.
func (a *Assembler) Translator() Translator {
	return a.tr
}

func (a *Assembler) ref(field string) string {
	if a.qualifier == "" {
		return field
	}
	return a.qualifier + "." + field
}

// Assemble renders the clause suffix with inline literals.
func (a *Assembler) Assemble(c *criteria.Criteria, table *schema.Table) (string, error) {
	return a.assemble(c, table, nil)
}

// AssembleParameterized renders the clause suffix with placeholders.
// Query.Args holds the values in placeholder order.
func (a *Assembler) AssembleParameterized(c *criteria.Criteria, table *schema.Table) (Query, error) {
	args := a.tr.NewArgs()
	sql, err := a.assemble(c, table, args)
	if err != nil {
		return Query{}, err
	}
	return Query{SQL: sql, Args: args.Values()}, nil
}

// AssembleInto is like AssembleParameterized but appends to an existing
// bind list, so the suffix can follow other bound parts of a statement.
func (a *Assembler) AssembleInto(c *criteria.Criteria, table *schema.Table, args *Args) (string, error) {
	return a.assemble(c, table, args)
}

// args == nil selects inline rendering.
func (a *Assembler) assemble(c *criteria.Criteria, table *schema.Table, args *Args) (string, error) {
	if c == nil {
		return "", nil
	}

	var parts []string

	// WHERE
	where, err := a.where(c.Where, table, args)
	if err != nil {
		return "", err
	}
	if where != "" {
		parts = append(parts, where)
	}

	// ORDER BY
	if order := a.orderBy(c.Sort, table); order != "" {
		parts = append(parts, order)
	}

	// LIMIT / OFFSET
	var page string
	if args == nil {
		page, err = a.tr.RenderPage(c.Page)
	} else {
		page, err = a.tr.RenderPageParams(c.Page, args)
	}
	if err != nil {
		return "", err
	}
	if page != "" {
		parts = append(parts, page)
	}

	return strings.Join(parts, " "), nil
}

// AssembleWhere renders only the WHERE clause with inline literals.
func (a *Assembler) AssembleWhere(w *criteria.WhereClause, table *schema.Table) (string, error) {
	return a.where(w, table, nil)
}

// AssembleWhereInto renders only the WHERE clause, binding into args.
func (a *Assembler) AssembleWhereInto(w *criteria.WhereClause, table *schema.Table, args *Args) (string, error) {
	return a.where(w, table, args)
}

func (a *Assembler) where(w *criteria.WhereClause, table *schema.Table, args *Args) (string, error) {
	if w.IsEmpty() {
		return "", nil
	}

	var conditions []string
	for _, cond := range w.Conditions {
		col, ok := table.Column(cond.Field)
		if !ok {
			continue
		}

		qualified := cond
		qualified.Field = a.ref(cond.Field)

		var sql string
		var err error
		if args == nil {
			sql, err = a.tr.RenderPredicate(qualified, col)
		} else {
			sql, err = a.tr.RenderPredicateParams(qualified, col, args)
		}
		if err != nil {
			return "", err
		}
		conditions = append(conditions, sql)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), nil
}

func (a *Assembler) orderBy(sorts []criteria.Sort, table *schema.Table) string {
	var keys []string
	for _, s := range sorts {
		if !table.Has(s.Field) {
			continue
		}
		s.Field = a.ref(s.Field)
		keys = append(keys, a.tr.RenderSort(s))
	}
	if len(keys) == 0 {
		return ""
	}
	return "ORDER BY " + strings.Join(keys, ", ")
}
