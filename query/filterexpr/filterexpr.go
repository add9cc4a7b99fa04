// Package filterexpr parses textual filter expressions into WHERE clauses.
//
//	age GREATER_THAN 25 AND name IN 'Jane', 'John' AND deleted_at IS_NULL
//
// An expression is a list of conditions joined by AND. Each condition is a
// field, an operator name and zero or more comma-separated values. Values
// are single-quoted strings (a doubled quote escapes a quote), integers,
// floats, true, false or NULL. Operator names and keywords are matched
// case-insensitively. Arity is checked later, when the clause is rendered.
package filterexpr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/satishbabariya/sqlcomposer/query/criteria"
)

// ErrUnknownOperator is returned when a condition names an operator that
// does not exist.
var ErrUnknownOperator = errors.New("unknown filter operator")

var filterLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'(?:[^']|'')*'`},
	{Name: "Float", Pattern: `[-+]?\d+\.\d+`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type expression struct {
	Pos        lexer.Position
	Conditions []*condition `@@ ( "AND" @@ )*`
}

type condition struct {
	Pos    lexer.Position
	Field  string   `@Ident`
	Op     string   `@Ident`
	Values []*value `( @@ ( "," @@ )* )?`
}

type value struct {
	String *string  `  @String`
	Float  *float64 `| @Float`
	Int    *int64   `| @Int`
	Bool   *string  `| @( "true" | "false" )`
	Null   bool     `| @"NULL"`
}

func (v *value) native() any {
	switch {
	case v.String != nil:
		s := *v.String
		s = s[1 : len(s)-1]
		return strings.ReplaceAll(s, "''", "'")
	case v.Float != nil:
		return *v.Float
	case v.Int != nil:
		return *v.Int
	case v.Bool != nil:
		return strings.EqualFold(*v.Bool, "true")
	default:
		return nil
	}
}

var parser = participle.MustBuild[expression](
	participle.Lexer(filterLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Ident"),
	participle.UseLookahead(2),
)

// Parse parses a filter expression. An empty or blank expression yields an
// empty clause.
func Parse(expr string) (*criteria.WhereClause, error) {
	clause := criteria.NewWhereClause()
	if strings.TrimSpace(expr) == "" {
		return clause, nil
	}

	ast, err := parser.ParseString("", expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expr, err)
	}

	for _, cond := range ast.Conditions {
		op, ok := criteria.ParseFilterOp(cond.Op)
		if !ok {
			return nil, fmt.Errorf("%w %q at %s", ErrUnknownOperator, cond.Op, cond.Pos)
		}

		values := make([]any, len(cond.Values))
		for i, v := range cond.Values {
			values[i] = v.native()
		}
		clause.And(cond.Field, op, values...)
	}
	return clause, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) *criteria.WhereClause {
	clause, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return clause
}

// Format renders a clause back into expression syntax. Values other than
// strings, numbers, booleans and nil are written with %v and quoted, as
// are non-finite floats.
func Format(w *criteria.WhereClause) string {
	if w.IsEmpty() {
		return ""
	}

	parts := make([]string, len(w.Conditions))
	for i, cond := range w.Conditions {
		var b strings.Builder
		b.WriteString(cond.Field)
		b.WriteString(" ")
		b.WriteString(cond.Op.String())
		for j, v := range cond.Values {
			if j == 0 {
				b.WriteString(" ")
			} else {
				b.WriteString(", ")
			}
			b.WriteString(formatValue(v))
		}
		parts[i] = b.String()
	}
	return strings.Join(parts, " AND ")
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(x), "'", "''") + "'"
	}
}

func formatFloat(f float64, bits int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "'" + strconv.FormatFloat(f, 'g', -1, bits) + "'"
	}
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
