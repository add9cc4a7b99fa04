// Package criteria holds the value types that describe filtering, sorting
// and pagination for a composed statement.
package criteria

import (
	"strings"
)

// Arity is the number of values an operator accepts.
type Arity int

const (
	// ArityZero operators take no values (IS NULL).
	ArityZero Arity = iota
	// ArityOne operators take exactly one value.
	ArityOne
	// ArityTwo operators take exactly two values (BETWEEN).
	ArityTwo
	// ArityVariadic operators take one or more values. A single value
	// collapses to an equality comparison.
	ArityVariadic
)

func (a Arity) String() string {
	switch a {
	case ArityZero:
		return "zero"
	case ArityOne:
		return "one"
	case ArityTwo:
		return "two"
	case ArityVariadic:
		return "variadic"
	default:
		return "unknown"
	}
}

// Accepts reports whether n values satisfy the arity.
func (a Arity) Accepts(n int) bool {
	switch a {
	case ArityZero:
		return n == 0
	case ArityOne:
		return n == 1
	case ArityTwo:
		return n == 2
	case ArityVariadic:
		return n >= 1
	default:
		return false
	}
}

// Form selects the predicate template an operator renders with.
type Form int

const (
	FormInvalid Form = iota
	// FormNullCheck: field TOKEN
	FormNullCheck
	// FormBinary: field TOKEN v0
	FormBinary
	// FormQuantified: field = TOKEN(v0)
	FormQuantified
	// FormExists: TOKEN(v0)
	FormExists
	// FormRange: field TOKEN v0 AND v1
	FormRange
	// FormMembership: field TOKEN (v0, v1, ...), or field = v0 for one value
	FormMembership
)

// FilterOp is a comparison operator usable in a Where condition.
type FilterOp int

const (
	OpInvalid FilterOp = iota

	// Comparison
	Equal
	NotEqual
	NotEqualAlt
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual

	// Pattern matching
	Like
	NotLike
	ILike
	NotILike
	SimilarTo
	NotSimilarTo
	Regexp
	NotRegexp
	RegexpCaseInsensitive
	NotRegexpCaseInsensitive

	// Set membership
	In
	NotIn

	// Null checks
	IsNull
	IsNotNull

	// Range
	Between
	NotBetween

	// Array
	Contains
	IsContainedBy
	Overlaps

	// JSON
	JSONContains
	JSONIsContainedBy
	JSONHasKey
	JSONHasAnyKey
	JSONHasAllKeys

	// String
	ContainsString
	NotContainsString
	ContainsStringCaseInsensitive
	NotContainsStringCaseInsensitive

	// Geometric
	OverlapsGeometry
	ContainsGeometry
	IsContainedByGeometry
	Intersects

	// Network
	ContainsInet
	IsContainedByInet
	IsSubnet
	IsSupernet

	// Full text search
	FulltextMatch
	FulltextQuery

	// Distinctness
	IsDistinctFrom
	IsNotDistinctFrom

	// Subquery
	Any
	All
	Some

	// Existence
	Exists
	NotExists

	opCount
)

type opInfo struct {
	name  string
	token string
	arity Arity
	form  Form
}

var ops = [opCount]opInfo{
	OpInvalid: {name: "INVALID"},

	Equal:              {"EQUAL", "=", ArityOne, FormBinary},
	NotEqual:           {"NOT_EQUAL", "!=", ArityOne, FormBinary},
	NotEqualAlt:        {"NOT_EQUAL_ALT", "<>", ArityOne, FormBinary},
	LessThan:           {"LESS_THAN", "<", ArityOne, FormBinary},
	LessThanOrEqual:    {"LESS_THAN_OR_EQUAL", "<=", ArityOne, FormBinary},
	GreaterThan:        {"GREATER_THAN", ">", ArityOne, FormBinary},
	GreaterThanOrEqual: {"GREATER_THAN_OR_EQUAL", ">=", ArityOne, FormBinary},

	Like:                     {"LIKE", "LIKE", ArityOne, FormBinary},
	NotLike:                  {"NOT_LIKE", "NOT LIKE", ArityOne, FormBinary},
	ILike:                    {"ILIKE", "ILIKE", ArityOne, FormBinary},
	NotILike:                 {"NOT_ILIKE", "NOT ILIKE", ArityOne, FormBinary},
	SimilarTo:                {"SIMILAR_TO", "SIMILAR TO", ArityOne, FormBinary},
	NotSimilarTo:             {"NOT_SIMILAR_TO", "NOT SIMILAR TO", ArityOne, FormBinary},
	Regexp:                   {"REGEXP", "~", ArityOne, FormBinary},
	NotRegexp:                {"NOT_REGEXP", "!~", ArityOne, FormBinary},
	RegexpCaseInsensitive:    {"REGEXP_CASE_INSENSITIVE", "~*", ArityOne, FormBinary},
	NotRegexpCaseInsensitive: {"NOT_REGEXP_CASE_INSENSITIVE", "!~*", ArityOne, FormBinary},

	In:    {"IN", "IN", ArityVariadic, FormMembership},
	NotIn: {"NOT_IN", "NOT IN", ArityVariadic, FormMembership},

	IsNull:    {"IS_NULL", "IS NULL", ArityZero, FormNullCheck},
	IsNotNull: {"IS_NOT_NULL", "IS NOT NULL", ArityZero, FormNullCheck},

	Between:    {"BETWEEN", "BETWEEN", ArityTwo, FormRange},
	NotBetween: {"NOT_BETWEEN", "NOT BETWEEN", ArityTwo, FormRange},

	Contains:      {"CONTAINS", "@>", ArityOne, FormBinary},
	IsContainedBy: {"IS_CONTAINED_BY", "<@", ArityOne, FormBinary},
	Overlaps:      {"OVERLAPS", "&&", ArityOne, FormBinary},

	JSONContains:      {"JSON_CONTAINS", "@>", ArityOne, FormBinary},
	JSONIsContainedBy: {"JSON_IS_CONTAINED_BY", "<@", ArityOne, FormBinary},
	JSONHasKey:        {"JSON_HAS_KEY", "?", ArityOne, FormBinary},
	JSONHasAnyKey:     {"JSON_HAS_ANY_KEY", "?|", ArityOne, FormBinary},
	JSONHasAllKeys:    {"JSON_HAS_ALL_KEYS", "?&", ArityOne, FormBinary},

	ContainsString:                   {"CONTAINS_STRING", "~~", ArityOne, FormBinary},
	NotContainsString:                {"NOT_CONTAINS_STRING", "!~~", ArityOne, FormBinary},
	ContainsStringCaseInsensitive:    {"CONTAINS_STRING_CASE_INSENSITIVE", "~~*", ArityOne, FormBinary},
	NotContainsStringCaseInsensitive: {"NOT_CONTAINS_STRING_CASE_INSENSITIVE", "!~~*", ArityOne, FormBinary},

	OverlapsGeometry:      {"OVERLAPS_GEOMETRY", "&&", ArityOne, FormBinary},
	ContainsGeometry:      {"CONTAINS_GEOMETRY", "@>", ArityOne, FormBinary},
	IsContainedByGeometry: {"IS_CONTAINED_BY_GEOMETRY", "<@", ArityOne, FormBinary},
	Intersects:            {"INTERSECTS", "&&", ArityOne, FormBinary},

	ContainsInet:      {"CONTAINS_INET", ">>", ArityOne, FormBinary},
	IsContainedByInet: {"IS_CONTAINED_BY_INET", "<<", ArityOne, FormBinary},
	IsSubnet:          {"IS_SUBNET", ">>=", ArityOne, FormBinary},
	IsSupernet:        {"IS_SUPERNET", "<<=", ArityOne, FormBinary},

	FulltextMatch: {"FULLTEXT_MATCH", "@@", ArityOne, FormBinary},
	FulltextQuery: {"FULLTEXT_QUERY", "@@@", ArityOne, FormBinary},

	IsDistinctFrom:    {"IS_DISTINCT_FROM", "IS DISTINCT FROM", ArityOne, FormBinary},
	IsNotDistinctFrom: {"IS_NOT_DISTINCT_FROM", "IS NOT DISTINCT FROM", ArityOne, FormBinary},

	Any:  {"ANY", "ANY", ArityOne, FormQuantified},
	All:  {"ALL", "ALL", ArityOne, FormQuantified},
	Some: {"SOME", "SOME", ArityOne, FormQuantified},

	Exists:    {"EXISTS", "EXISTS", ArityOne, FormExists},
	NotExists: {"NOT_EXISTS", "NOT EXISTS", ArityOne, FormExists},
}

func (op FilterOp) info() opInfo {
	if op <= OpInvalid || op >= opCount {
		return ops[OpInvalid]
	}
	return ops[op]
}

// Valid reports whether op is a declared operator.
func (op FilterOp) Valid() bool {
	return op > OpInvalid && op < opCount
}

// String returns the operator name, e.g. GREATER_THAN.
func (op FilterOp) String() string {
	return op.info().name
}

// Token returns the SQL operator token, e.g. ">".
func (op FilterOp) Token() string {
	return op.info().token
}

// Arity returns the operator's arity class.
func (op FilterOp) Arity() Arity {
	return op.info().arity
}

// Form returns the predicate template the operator renders with.
func (op FilterOp) Form() Form {
	return op.info().form
}

// FilterOps returns every declared operator in declaration order.
func FilterOps() []FilterOp {
	out := make([]FilterOp, 0, opCount-1)
	for op := OpInvalid + 1; op < opCount; op++ {
		out = append(out, op)
	}
	return out
}

// ParseFilterOp resolves an operator by name, case-insensitively. A SQL
// token is accepted too; tokens shared by several operators resolve to the
// first one declared.
func ParseFilterOp(s string) (FilterOp, bool) {
	s = strings.TrimSpace(s)
	for op := OpInvalid + 1; op < opCount; op++ {
		if strings.EqualFold(ops[op].name, s) {
			return op, true
		}
	}
	for op := OpInvalid + 1; op < opCount; op++ {
		if strings.EqualFold(ops[op].token, s) {
			return op, true
		}
	}
	return OpInvalid, false
}

// MarshalText implements encoding.TextMarshaler.
func (op FilterOp) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *FilterOp) UnmarshalText(b []byte) error {
	v, ok := ParseFilterOp(string(b))
	if !ok {
		return &UnknownOperatorError{Name: string(b)}
	}
	*op = v
	return nil
}

// UnknownOperatorError is returned when an operator name cannot be resolved.
type UnknownOperatorError struct {
	Name string
}

func (e *UnknownOperatorError) Error() string {
	return "unknown filter operator: " + e.Name
}
