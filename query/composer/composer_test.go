package composer_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/sqlcomposer/query/composer"
	"github.com/satishbabariya/sqlcomposer/query/criteria"
	"github.com/satishbabariya/sqlcomposer/query/sqlgen"
	"github.com/satishbabariya/sqlcomposer/schema"
)

var users = schema.Define("users").
	Column("id", schema.Int).
	Column("name", schema.Text).
	Column("age", schema.Int).
	Column("active", schema.Boolean).
	MustBuild()

func newComposer(t *testing.T, dialect string) *composer.Composer {
	t.Helper()
	tr, err := sqlgen.NewTranslator(dialect)
	require.NoError(t, err)
	return composer.New(tr, users)
}

func TestSelect_EndToEnd(t *testing.T) {
	c := newComposer(t, "postgres")
	q := composer.SelectQuery{
		Criteria: criteria.New().
			Filter("name", criteria.Equal, "John Doe").
			Filter("age", criteria.GreaterThan, 25),
	}

	sql, err := c.Select(q)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name, age, active FROM users WHERE name = 'John Doe' AND age > 25", sql)

	params, err := c.SelectParams(q)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name, age, active FROM users WHERE name = $1 AND age > $2", params.SQL)
	assert.Equal(t, []any{"John Doe", 25}, params.Args)
}

func TestSelect(t *testing.T) {
	c := newComposer(t, "postgres")

	tests := []struct {
		name  string
		query composer.SelectQuery
		want  string
	}{
		{"all columns", composer.SelectQuery{}, "SELECT id, name, age, active FROM users"},
		{
			"columns in table order",
			composer.SelectQuery{Columns: []string{"age", "id"}},
			"SELECT id, age FROM users",
		},
		{
			"unknown columns dropped",
			composer.SelectQuery{Columns: []string{"name", "nickname"}},
			"SELECT name FROM users",
		},
		{
			"alias",
			composer.SelectQuery{
				Columns:  []string{"id", "name"},
				Alias:    "u",
				Criteria: criteria.New().Filter("name", criteria.Like, "J%").OrderBy("id", criteria.Desc),
			},
			"SELECT u.id, u.name FROM users AS u WHERE u.name LIKE 'J%' ORDER BY u.id DESC",
		},
		{
			"sort and page",
			composer.SelectQuery{Criteria: criteria.New().OrderBy("age", criteria.Desc).Limit(10).Offset(20)},
			"SELECT id, name, age, active FROM users ORDER BY age DESC LIMIT 10 OFFSET 20",
		},
		{
			"unknown where and sort dropped",
			composer.SelectQuery{Criteria: criteria.New().Filter("nickname", criteria.Equal, "x").OrderBy("score", criteria.Asc)},
			"SELECT id, name, age, active FROM users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Select(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelect_Errors(t *testing.T) {
	c := newComposer(t, "postgres")

	_, err := c.Select(composer.SelectQuery{Columns: []string{"nickname"}})
	assert.ErrorIs(t, err, composer.ErrNoColumns)

	_, err = c.Select(composer.SelectQuery{Criteria: criteria.New().Filter("age", criteria.Between, 1)})
	assert.ErrorIs(t, err, sqlgen.ErrArity)

	_, err = c.SelectParams(composer.SelectQuery{Criteria: criteria.New().Filter("name", criteria.In)})
	assert.ErrorIs(t, err, sqlgen.ErrArity)

	mysql := newComposer(t, "mysql")
	_, err = mysql.Select(composer.SelectQuery{Criteria: criteria.New().Filter("name", criteria.ILike, "j%")})
	assert.ErrorIs(t, err, sqlgen.ErrUnsupportedOperator)
}

func TestSelectParams_Dialects(t *testing.T) {
	q := composer.SelectQuery{
		Columns:  []string{"id"},
		Criteria: criteria.New().Filter("id", criteria.In, 1, 2).Limit(5),
	}

	tests := []struct {
		dialect string
		want    string
	}{
		{"postgres", "SELECT id FROM users WHERE id IN ($1, $2) LIMIT $3"},
		{"mysql", "SELECT id FROM users WHERE id IN (?, ?) LIMIT ?"},
		{"sqlite", "SELECT id FROM users WHERE id IN (?, ?) LIMIT ?"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			got, err := newComposer(t, tt.dialect).SelectParams(q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.SQL)
			assert.Equal(t, []any{1, 2, 5}, got.Args)
		})
	}
}

func TestInsert(t *testing.T) {
	c := newComposer(t, "postgres")

	assert.Equal(t, "INSERT INTO users (name) VALUES ('Jane')",
		c.Insert(map[string]any{"name": "Jane", "unknown_col": 1}))

	assert.Equal(t, "INSERT INTO users (id, name, age, active) VALUES (1, 'O''Brien', 40, false)",
		c.Insert(map[string]any{"active": false, "age": 40, "name": "O'Brien", "id": 1}))

	assert.Equal(t, "", c.Insert(map[string]any{}))
	assert.Equal(t, "", c.Insert(map[string]any{"unknown_col": 1}))
}

func TestInsertParams(t *testing.T) {
	c := newComposer(t, "postgres")

	q := c.InsertParams(map[string]any{"age": 30, "name": "Jane", "unknown_col": 1})
	assert.Equal(t, "INSERT INTO users (name, age) VALUES ($1, $2)", q.SQL)
	assert.Equal(t, []any{"Jane", 30}, q.Args)

	empty := c.InsertParams(map[string]any{})
	assert.Equal(t, "", empty.SQL)
	assert.Equal(t, []any{}, empty.Args)

	filtered := c.InsertParams(map[string]any{"unknown_col": 1})
	assert.Equal(t, "", filtered.SQL)
	assert.Equal(t, []any{}, filtered.Args)
}

func TestUpdate(t *testing.T) {
	c := newComposer(t, "postgres")

	assert.Equal(t, "UPDATE users SET name = 'Jane', active = true",
		c.Update(map[string]any{"active": true, "name": "Jane", "unknown_col": 1}))

	assert.Equal(t, "", c.Update(map[string]any{}))
	assert.Equal(t, "", c.Update(nil))
	assert.Equal(t, "", c.Update(map[string]any{"unknown_col": 1}))
}

func TestUpdateParams(t *testing.T) {
	c := newComposer(t, "mysql")

	q := c.UpdateParams(map[string]any{"age": 31, "name": "Jane"})
	assert.Equal(t, "UPDATE users SET name = ?, age = ?", q.SQL)
	assert.Equal(t, []any{"Jane", 31}, q.Args)

	empty := c.UpdateParams(map[string]any{})
	assert.Equal(t, "", empty.SQL)
	assert.Equal(t, []any{}, empty.Args)
}

func TestUpdateWhere(t *testing.T) {
	c := newComposer(t, "postgres")
	where := criteria.NewWhereClause().And("id", criteria.Equal, 7)

	sql, err := c.UpdateWhere(map[string]any{"name": "Jane"}, where)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET name = 'Jane' WHERE id = 7", sql)

	q, err := c.UpdateWhereParams(map[string]any{"name": "Jane", "age": 31}, where)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET name = $1, age = $2 WHERE id = $3", q.SQL)
	assert.Equal(t, []any{"Jane", 31, 7}, q.Args)

	sql, err = c.UpdateWhere(map[string]any{}, where)
	require.NoError(t, err)
	assert.Equal(t, "", sql)

	_, err = c.UpdateWhere(map[string]any{"name": "Jane"}, criteria.NewWhereClause().And("bogus", criteria.Equal, 1))
	assert.ErrorIs(t, err, composer.ErrEmptyWhere)

	_, err = c.UpdateWhereParams(map[string]any{"name": "Jane"}, nil)
	assert.ErrorIs(t, err, composer.ErrEmptyWhere)
}

func TestDelete(t *testing.T) {
	c := newComposer(t, "postgres")
	assert.Equal(t, "DELETE FROM users", c.Delete())
}

func TestDeleteWhere(t *testing.T) {
	c := newComposer(t, "postgres")
	where := criteria.NewWhereClause().
		And("active", criteria.Equal, false).
		And("age", criteria.LessThan, 18)

	sql, err := c.DeleteWhere(where)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM users WHERE active = false AND age < 18", sql)

	q, err := c.DeleteWhereParams(where)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM users WHERE active = $1 AND age < $2", q.SQL)
	assert.Equal(t, []any{false, 18}, q.Args)

	_, err = c.DeleteWhere(criteria.NewWhereClause())
	assert.ErrorIs(t, err, composer.ErrEmptyWhere)

	_, err = c.DeleteWhereParams(criteria.NewWhereClause().And("bogus", criteria.Equal, 1))
	assert.ErrorIs(t, err, composer.ErrEmptyWhere)

	_, err = c.DeleteWhere(criteria.NewWhereClause().And("age", criteria.Between, 1))
	assert.ErrorIs(t, err, sqlgen.ErrArity)
}

func TestComposer_NoTrailingWhitespace(t *testing.T) {
	c := newComposer(t, "postgres")

	statements := []string{
		c.Delete(),
		c.Insert(map[string]any{"id": 1}),
		c.Update(map[string]any{"id": 1}),
	}
	sql, err := c.Select(composer.SelectQuery{Criteria: criteria.New()})
	require.NoError(t, err)
	statements = append(statements, sql)

	for _, s := range statements {
		assert.NotContains(t, s, "  ")
		assert.NotContains(t, s, ";")
		assert.Equal(t, strings.TrimSpace(s), s)
	}
}

func TestComposer_ConcurrentUse(t *testing.T) {
	c := newComposer(t, "postgres")
	q := composer.SelectQuery{Criteria: criteria.New().Filter("age", criteria.GreaterThan, 25)}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sql, err := c.SelectParams(q)
			assert.NoError(t, err)
			assert.Equal(t, "SELECT id, name, age, active FROM users WHERE age > $1", sql.SQL)
		}()
	}
	wg.Wait()
}
