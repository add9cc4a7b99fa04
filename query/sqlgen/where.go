package sqlgen

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/sqlcomposer/query/criteria"
	"github.com/satishbabariya/sqlcomposer/schema"
)

// RenderPredicate renders w with its values inlined as literals.
func (t *SQLTranslator) RenderPredicate(w criteria.Where, col schema.Column) (string, error) {
	if err := t.check(w); err != nil {
		return "", err
	}

	operands := make([]string, len(w.Values))
	for i, v := range w.Values {
		operands[i] = t.FormatValue(col, v)
	}
	return t.render(w, operands)
}

// RenderPredicateParams renders w with a placeholder per value. The values
// are appended to args in placeholder order. Nothing is bound when w is
// rejected.
func (t *SQLTranslator) RenderPredicateParams(w criteria.Where, col schema.Column, args *Args) (string, error) {
	if err := t.check(w); err != nil {
		return "", err
	}

	operands := make([]string, len(w.Values))
	for i, v := range w.Values {
		operands[i] = args.Add(v)
	}
	return t.render(w, operands)
}

// check validates dialect support and arity.
func (t *SQLTranslator) check(w criteria.Where) error {
	if !t.Supports(w.Op) {
		return &UnsupportedOperatorError{Field: w.Field, Op: w.Op, Dialect: t.dialect}
	}
	if !w.Op.Arity().Accepts(len(w.Values)) {
		return &ArityError{Field: w.Field, Op: w.Op, Want: w.Op.Arity(), Got: len(w.Values)}
	}
	return nil
}

// render applies the operator template to already formatted operands.
func (t *SQLTranslator) render(w criteria.Where, operands []string) (string, error) {
	token := t.Token(w.Op)

	switch w.Op.Form() {
	case criteria.FormNullCheck:
		return fmt.Sprintf("%s %s", w.Field, token), nil

	case criteria.FormBinary:
		return fmt.Sprintf("%s %s %s", w.Field, token, operands[0]), nil

	case criteria.FormQuantified:
		return fmt.Sprintf("%s = %s(%s)", w.Field, token, operands[0]), nil

	case criteria.FormExists:
		return fmt.Sprintf("%s(%s)", token, operands[0]), nil

	case criteria.FormRange:
		return fmt.Sprintf("%s %s %s AND %s", w.Field, token, operands[0], operands[1]), nil

	case criteria.FormMembership:
		if len(operands) == 1 {
			eq := t.Token(criteria.Equal)
			if w.Op == criteria.NotIn {
				eq = t.Token(criteria.NotEqual)
			}
			return fmt.Sprintf("%s %s %s", w.Field, eq, operands[0]), nil
		}
		return fmt.Sprintf("%s %s (%s)", w.Field, token, strings.Join(operands, ", ")), nil
	}

	return "", &UnsupportedOperatorError{Field: w.Field, Op: w.Op, Dialect: t.dialect}
}
