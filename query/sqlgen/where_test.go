package sqlgen_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/sqlcomposer/query/criteria"
	"github.com/satishbabariya/sqlcomposer/query/sqlgen"
	"github.com/satishbabariya/sqlcomposer/schema"
)

var (
	nameCol = schema.Column{Name: "name", Type: schema.Text}
	ageCol  = schema.Column{Name: "age", Type: schema.Int}
)

func TestRenderPredicate_Postgres(t *testing.T) {
	tr := sqlgen.MustTranslator("postgres")

	tests := []struct {
		name  string
		where criteria.Where
		col   schema.Column
		want  string
	}{
		{"equal", criteria.NewWhere("name", criteria.Equal, "John Doe"), nameCol, "name = 'John Doe'"},
		{"not equal", criteria.NewWhere("name", criteria.NotEqual, "x"), nameCol, "name != 'x'"},
		{"not equal alt", criteria.NewWhere("name", criteria.NotEqualAlt, "x"), nameCol, "name <> 'x'"},
		{"greater than", criteria.NewWhere("age", criteria.GreaterThan, 25), ageCol, "age > 25"},
		{"less than or equal", criteria.NewWhere("age", criteria.LessThanOrEqual, 65), ageCol, "age <= 65"},
		{"like", criteria.NewWhere("name", criteria.Like, "J%"), nameCol, "name LIKE 'J%'"},
		{"not ilike", criteria.NewWhere("name", criteria.NotILike, "j%"), nameCol, "name NOT ILIKE 'j%'"},
		{"similar to", criteria.NewWhere("name", criteria.SimilarTo, "(J|j)%"), nameCol, "name SIMILAR TO '(J|j)%'"},
		{"regexp", criteria.NewWhere("name", criteria.Regexp, "^J"), nameCol, "name ~ '^J'"},
		{"regexp ci", criteria.NewWhere("name", criteria.NotRegexpCaseInsensitive, "^j"), nameCol, "name !~* '^j'"},
		{"json has key", criteria.NewWhere("name", criteria.JSONHasKey, "a"), nameCol, "name ? 'a'"},
		{"contains string", criteria.NewWhere("name", criteria.ContainsString, "%o%"), nameCol, "name ~~ '%o%'"},
		{"inet subnet", criteria.NewWhere("name", criteria.IsSubnet, "10.0.0.0/8"), nameCol, "name >>= '10.0.0.0/8'"},
		{"fulltext", criteria.NewWhere("name", criteria.FulltextMatch, "cat"), nameCol, "name @@ 'cat'"},
		{"distinct from", criteria.NewWhere("name", criteria.IsDistinctFrom, "x"), nameCol, "name IS DISTINCT FROM 'x'"},
		{"in single collapses", criteria.NewWhere("name", criteria.In, "a"), nameCol, "name = 'a'"},
		{"in list", criteria.NewWhere("name", criteria.In, "a", "b"), nameCol, "name IN ('a', 'b')"},
		{"not in single collapses", criteria.NewWhere("name", criteria.NotIn, "a"), nameCol, "name != 'a'"},
		{"not in list", criteria.NewWhere("age", criteria.NotIn, 1, 2, 3), ageCol, "age NOT IN (1, 2, 3)"},
		{"is null", criteria.NewWhere("name", criteria.IsNull), nameCol, "name IS NULL"},
		{"is not null", criteria.NewWhere("name", criteria.IsNotNull), nameCol, "name IS NOT NULL"},
		{"between", criteria.NewWhere("age", criteria.Between, 1, 2), ageCol, "age BETWEEN 1 AND 2"},
		{"not between", criteria.NewWhere("age", criteria.NotBetween, 18, 65), ageCol, "age NOT BETWEEN 18 AND 65"},
		{"any", criteria.NewWhere("age", criteria.Any, sqlgen.Raw("ARRAY[1,2]")), ageCol, "age = ANY(ARRAY[1,2])"},
		{"all", criteria.NewWhere("name", criteria.All, "{a,b}"), nameCol, "name = ALL('{a,b}')"},
		{"some", criteria.NewWhere("age", criteria.Some, sqlgen.Raw("SELECT age FROM people")), ageCol, "age = SOME(SELECT age FROM people)"},
		{"exists", criteria.NewWhere("age", criteria.Exists, sqlgen.Raw("SELECT 1 FROM orders")), ageCol, "EXISTS(SELECT 1 FROM orders)"},
		{"not exists", criteria.NewWhere("name", criteria.NotExists, "x"), nameCol, "NOT EXISTS('x')"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.RenderPredicate(tt.where, tt.col)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderPredicate_InMatchesEqual(t *testing.T) {
	tr := sqlgen.MustTranslator("postgres")

	in, err := tr.RenderPredicate(criteria.NewWhere("f", criteria.In, "a"), nameCol)
	require.NoError(t, err)
	eq, err := tr.RenderPredicate(criteria.NewWhere("f", criteria.Equal, "a"), nameCol)
	require.NoError(t, err)

	assert.Equal(t, eq, in)
	assert.Equal(t, "f = 'a'", in)
}

func TestRenderPredicate_Arity(t *testing.T) {
	for _, dialect := range sqlgen.Dialects() {
		tr := sqlgen.MustTranslator(string(dialect))

		for _, op := range criteria.FilterOps() {
			if !tr.Supports(op) {
				continue
			}

			t.Run(string(dialect)+"/"+op.String(), func(t *testing.T) {
				switch op.Arity() {
				case criteria.ArityZero:
					_, err := tr.RenderPredicate(criteria.NewWhere("f", op), nameCol)
					assert.NoError(t, err)
					_, err = tr.RenderPredicate(criteria.NewWhere("f", op, "x"), nameCol)
					assert.ErrorIs(t, err, sqlgen.ErrArity)

				case criteria.ArityOne:
					_, err := tr.RenderPredicate(criteria.NewWhere("f", op, "x"), nameCol)
					assert.NoError(t, err)
					_, err = tr.RenderPredicate(criteria.NewWhere("f", op, "x", "y"), nameCol)
					assert.ErrorIs(t, err, sqlgen.ErrArity)
					_, err = tr.RenderPredicate(criteria.NewWhere("f", op), nameCol)
					assert.ErrorIs(t, err, sqlgen.ErrArity)

				case criteria.ArityTwo:
					_, err := tr.RenderPredicate(criteria.NewWhere("f", op, 1, 2), ageCol)
					assert.NoError(t, err)
					_, err = tr.RenderPredicate(criteria.NewWhere("f", op, 1), ageCol)
					assert.ErrorIs(t, err, sqlgen.ErrArity)

				case criteria.ArityVariadic:
					_, err := tr.RenderPredicate(criteria.NewWhere("f", op, "x"), nameCol)
					assert.NoError(t, err)
					_, err = tr.RenderPredicate(criteria.NewWhere("f", op, "x", "y", "z"), nameCol)
					assert.NoError(t, err)
					_, err = tr.RenderPredicate(criteria.NewWhere("f", op), nameCol)
					assert.ErrorIs(t, err, sqlgen.ErrArity)
				}
			})
		}
	}
}

func TestArityError(t *testing.T) {
	tr := sqlgen.MustTranslator("postgres")

	_, err := tr.RenderPredicate(criteria.NewWhere("age", criteria.Between, 1), ageCol)
	require.Error(t, err)

	var arityErr *sqlgen.ArityError
	require.True(t, errors.As(err, &arityErr))
	assert.Equal(t, "age", arityErr.Field)
	assert.Equal(t, criteria.Between, arityErr.Op)
	assert.Equal(t, criteria.ArityTwo, arityErr.Want)
	assert.Equal(t, 1, arityErr.Got)
	assert.Contains(t, err.Error(), "requires exactly 2 values, got 1")

	_, err = tr.RenderPredicate(criteria.NewWhere("age", criteria.GreaterThan, 1, 2), ageCol)
	assert.Contains(t, err.Error(), "requires exactly 1 value, got 2")

	_, err = tr.RenderPredicate(criteria.NewWhere("age", criteria.In), ageCol)
	assert.Contains(t, err.Error(), "requires at least 1 value, got 0")

	_, err = tr.RenderPredicate(criteria.NewWhere("age", criteria.IsNull, 1), ageCol)
	assert.Contains(t, err.Error(), "requires no values, got 1")
}

func TestRenderPredicate_Unsupported(t *testing.T) {
	tests := []struct {
		dialect string
		op      criteria.FilterOp
	}{
		{"postgres", criteria.OpInvalid},
		{"postgres", criteria.FilterOp(4096)},
		{"mysql", criteria.ILike},
		{"mysql", criteria.JSONHasKey},
		{"mysql", criteria.IsDistinctFrom},
		{"mysql", criteria.FulltextQuery},
		{"sqlite", criteria.Any},
		{"sqlite", criteria.SimilarTo},
	}

	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.op.String(), func(t *testing.T) {
			tr := sqlgen.MustTranslator(tt.dialect)

			_, err := tr.RenderPredicate(criteria.NewWhere("name", tt.op, "x"), nameCol)
			require.ErrorIs(t, err, sqlgen.ErrUnsupportedOperator)

			var opErr *sqlgen.UnsupportedOperatorError
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, "name", opErr.Field)
			assert.Equal(t, tt.op, opErr.Op)
			assert.Equal(t, sqlgen.Dialect(tt.dialect), opErr.Dialect)
		})
	}
}

func TestRenderPredicate_DialectTokens(t *testing.T) {
	tests := []struct {
		dialect string
		where   criteria.Where
		want    string
	}{
		{"mysql", criteria.NewWhere("name", criteria.Regexp, "^J"), "name REGEXP '^J'"},
		{"mysql", criteria.NewWhere("name", criteria.NotRegexp, "^J"), "name NOT REGEXP '^J'"},
		{"mysql", criteria.NewWhere("name", criteria.IsNotDistinctFrom, "x"), "name <=> 'x'"},
		{"mysql", criteria.NewWhere("name", criteria.Any, sqlgen.Raw("SELECT name FROM t")), "name = ANY(SELECT name FROM t)"},
		{"sqlite", criteria.NewWhere("name", criteria.Regexp, "^J"), "name REGEXP '^J'"},
		{"sqlite", criteria.NewWhere("name", criteria.IsDistinctFrom, "x"), "name IS NOT 'x'"},
		{"sqlite", criteria.NewWhere("name", criteria.IsNotDistinctFrom, "x"), "name IS 'x'"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.where.Op.String(), func(t *testing.T) {
			tr := sqlgen.MustTranslator(tt.dialect)
			got, err := tr.RenderPredicate(tt.where, nameCol)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderPredicateParams(t *testing.T) {
	tests := []struct {
		dialect  string
		where    criteria.Where
		wantSQL  string
		wantArgs []any
	}{
		{"postgres", criteria.NewWhere("name", criteria.Equal, "John"), "name = $1", []any{"John"}},
		{"postgres", criteria.NewWhere("age", criteria.Between, 1, 2), "age BETWEEN $1 AND $2", []any{1, 2}},
		{"postgres", criteria.NewWhere("age", criteria.In, 1, 2, 3), "age IN ($1, $2, $3)", []any{1, 2, 3}},
		{"postgres", criteria.NewWhere("age", criteria.NotIn, 1), "age != $1", []any{1}},
		{"postgres", criteria.NewWhere("age", criteria.IsNull), "age IS NULL", []any{}},
		{"postgres", criteria.NewWhere("age", criteria.Exists, sqlgen.Raw("SELECT 1")), "EXISTS(SELECT 1)", []any{}},
		{"postgres", criteria.NewWhere("age", criteria.Any, []int{1, 2}), "age = ANY($1)", []any{[]int{1, 2}}},
		{"mysql", criteria.NewWhere("age", criteria.In, 1, 2), "age IN (?, ?)", []any{1, 2}},
		{"sqlite", criteria.NewWhere("name", criteria.Like, "J%"), "name LIKE ?", []any{"J%"}},
	}

	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.wantSQL, func(t *testing.T) {
			tr := sqlgen.MustTranslator(tt.dialect)
			args := tr.NewArgs()

			got, err := tr.RenderPredicateParams(tt.where, ageCol, args)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, got)
			assert.Equal(t, tt.wantArgs, args.Values())
		})
	}
}

func TestRenderPredicateParams_RejectedBindsNothing(t *testing.T) {
	tr := sqlgen.MustTranslator("postgres")
	args := tr.NewArgs()

	_, err := tr.RenderPredicateParams(criteria.NewWhere("age", criteria.Between, 1, 2, 3), ageCol, args)
	assert.ErrorIs(t, err, sqlgen.ErrArity)
	assert.Equal(t, 0, args.Len())
}

func TestRenderPredicate_DoesNotMutateValues(t *testing.T) {
	tr := sqlgen.MustTranslator("postgres")
	w := criteria.NewWhere("name", criteria.In, "a", "b")

	_, err := tr.RenderPredicate(w, nameCol)
	require.NoError(t, err)
	_, err = tr.RenderPredicateParams(w, nameCol, tr.NewArgs())
	require.NoError(t, err)

	assert.Equal(t, []any{"a", "b"}, w.Values)
}
