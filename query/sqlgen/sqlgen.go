// Package sqlgen translates criteria into dialect-specific SQL fragments.
package sqlgen

import (
	"github.com/satishbabariya/sqlcomposer/query/criteria"
	"github.com/satishbabariya/sqlcomposer/schema"
)

// Query represents a SQL query with arguments
type Query struct {
	SQL  string
	Args []any
}

// ValueFormatter renders a runtime value as a SQL literal for a column.
type ValueFormatter interface {
	FormatValue(col schema.Column, v any) string
}

// PredicateRenderer renders a single condition against its column.
type PredicateRenderer interface {
	RenderPredicate(w criteria.Where, col schema.Column) (string, error)
	RenderPredicateParams(w criteria.Where, col schema.Column, args *Args) (string, error)
}

// ClauseRenderer renders ORDER BY keys and pagination.
type ClauseRenderer interface {
	RenderSort(s criteria.Sort) string
	RenderPage(p *criteria.Page) (string, error)
	RenderPageParams(p *criteria.Page, args *Args) (string, error)
}

// Translator is everything the assembler and composer need from a dialect.
type Translator interface {
	ValueFormatter
	PredicateRenderer
	ClauseRenderer
	Dialect() Dialect
	NewArgs() *Args
}

// SQLTranslator implements Translator for the built-in dialects.
// It holds no mutable state and may be shared between goroutines.
type SQLTranslator struct {
	dialect Dialect
	rules   *dialectRules
}

var _ Translator = (*SQLTranslator)(nil)

// NewTranslator creates a translator for the given dialect name.
func NewTranslator(dialect string) (*SQLTranslator, error) {
	d, err := ParseDialect(dialect)
	if err != nil {
		return nil, err
	}
	return &SQLTranslator{dialect: d, rules: rulesFor(d)}, nil
}

// MustTranslator is like NewTranslator but panics on error.
func MustTranslator(dialect string) *SQLTranslator {
	t, err := NewTranslator(dialect)
	if err != nil {
		panic(err)
	}
	return t
}

// Dialect returns the translator's dialect.
func (t *SQLTranslator) Dialect() Dialect {
	return t.dialect
}

// NewArgs returns an empty bind list using the dialect's placeholders.
func (t *SQLTranslator) NewArgs() *Args {
	return newArgs(t.rules.placeholder)
}

// Supports reports whether the dialect can render op.
func (t *SQLTranslator) Supports(op criteria.FilterOp) bool {
	return op.Valid() && !t.rules.unsupported[op]
}

// Token returns the operator token as rendered by this dialect.
func (t *SQLTranslator) Token(op criteria.FilterOp) string {
	if tok, ok := t.rules.tokens[op]; ok {
		return tok
	}
	return op.Token()
}
