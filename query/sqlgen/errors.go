package sqlgen

import (
	"errors"
	"fmt"

	"github.com/satishbabariya/sqlcomposer/query/criteria"
)

var (
	// ErrArity is matched by every *ArityError.
	ErrArity = errors.New("wrong number of values for operator")

	// ErrUnsupportedOperator is matched by every *UnsupportedOperatorError.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrUnsupportedDialect is returned for unknown dialect names.
	ErrUnsupportedDialect = errors.New("unsupported dialect")

	// ErrNegativePage is returned when a limit or offset is negative.
	ErrNegativePage = errors.New("limit and offset must not be negative")
)

// ArityError reports a condition whose value count does not match its
// operator's arity.
type ArityError struct {
	Field string
	Op    criteria.FilterOp
	Want  criteria.Arity
	Got   int
}

func (e *ArityError) Error() string {
	var want string
	switch e.Want {
	case criteria.ArityZero:
		want = "no values"
	case criteria.ArityOne:
		want = "exactly 1 value"
	case criteria.ArityTwo:
		want = "exactly 2 values"
	default:
		want = "at least 1 value"
	}
	return fmt.Sprintf("operator %s on field %s requires %s, got %d", e.Op, e.Field, want, e.Got)
}

// Is reports whether target is ErrArity.
func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}

// UnsupportedOperatorError reports an operator the dialect cannot render.
type UnsupportedOperatorError struct {
	Field   string
	Op      criteria.FilterOp
	Dialect Dialect
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported operator %s for field %s in %s", e.Op, e.Field, e.Dialect)
}

// Is reports whether target is ErrUnsupportedOperator.
func (e *UnsupportedOperatorError) Is(target error) bool {
	return target == ErrUnsupportedOperator
}
