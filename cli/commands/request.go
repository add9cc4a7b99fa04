package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/satishbabariya/sqlcomposer/cli/internal/config"
	"github.com/satishbabariya/sqlcomposer/query/composer"
	"github.com/satishbabariya/sqlcomposer/query/criteria"
	"github.com/satishbabariya/sqlcomposer/query/filterexpr"
	"github.com/satishbabariya/sqlcomposer/query/sqlgen"
	"github.com/satishbabariya/sqlcomposer/schema"
)

// Statement kinds a request can ask for.
const (
	StatementSelect = "select"
	StatementInsert = "insert"
	StatementUpdate = "update"
	StatementDelete = "delete"
)

// errNothingToWrite is returned when an INSERT or UPDATE has no values that
// name a column.
var errNothingToWrite = errors.New("no values name a column of the table")

// Request is a statement request file:
//
//	table: users
//	columns:
//	  - {name: id, type: int}
//	  - {name: name, type: text}
//	statement: select
//	select: [id, name]
//	where: "name EQUAL 'Jane' AND id GREATER_THAN 10"
//	sort: ["id:desc"]
//	limit: 10
type Request struct {
	schema.Definition `yaml:",inline"`

	Statement string         `yaml:"statement"`
	Select    []string       `yaml:"select,omitempty"`
	Alias     string         `yaml:"alias,omitempty"`
	Where     string         `yaml:"where,omitempty"`
	Sort      []string       `yaml:"sort,omitempty"`
	Limit     *int           `yaml:"limit,omitempty"`
	Offset    *int           `yaml:"offset,omitempty"`
	Values    map[string]any `yaml:"values,omitempty"`
}

// LoadRequest reads and parses a request file.
func LoadRequest(path string) (*Request, error) {
	data, err := afero.ReadFile(config.AppFs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request: %w", err)
	}
	return ParseRequest(data)
}

// ParseRequest parses request YAML.
func ParseRequest(data []byte) (*Request, error) {
	var r Request
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	r.Statement = strings.ToLower(strings.TrimSpace(r.Statement))
	if r.Statement == "" {
		r.Statement = StatementSelect
	}
	switch r.Statement {
	case StatementSelect, StatementInsert, StatementUpdate, StatementDelete:
	default:
		return nil, fmt.Errorf("invalid request: unknown statement %q", r.Statement)
	}
	return &r, nil
}

// Criteria builds the WHERE, ORDER BY and pagination of the request.
func (r *Request) Criteria() (*criteria.Criteria, error) {
	where, err := filterexpr.Parse(r.Where)
	if err != nil {
		return nil, err
	}

	c := criteria.New()
	c.Where = where
	for _, s := range r.Sort {
		field, dir, _ := strings.Cut(s, ":")
		field = strings.TrimSpace(field)
		if field == "" {
			return nil, fmt.Errorf("invalid sort %q", s)
		}
		c.OrderBy(field, criteria.ParseDirection(dir))
	}
	if r.Limit != nil {
		c.Limit(*r.Limit)
	}
	if r.Offset != nil {
		c.Offset(*r.Offset)
	}
	return c, nil
}

// Compose renders the request in tr's dialect. With params set, values are
// bound; otherwise Args is nil.
func (r *Request) Compose(tr sqlgen.Translator, params bool) (sqlgen.Query, error) {
	table, err := r.Definition.Build()
	if err != nil {
		return sqlgen.Query{}, err
	}
	c := composer.New(tr, table)

	crit, err := r.Criteria()
	if err != nil {
		return sqlgen.Query{}, err
	}

	switch r.Statement {
	case StatementInsert:
		if params {
			return nonEmpty(c.InsertParams(r.Values))
		}
		return nonEmpty(sqlgen.Query{SQL: c.Insert(r.Values)})

	case StatementUpdate:
		if crit.Where.IsEmpty() {
			if params {
				return nonEmpty(c.UpdateParams(r.Values))
			}
			return nonEmpty(sqlgen.Query{SQL: c.Update(r.Values)})
		}
		if params {
			q, err := c.UpdateWhereParams(r.Values, crit.Where)
			if err != nil {
				return q, err
			}
			return nonEmpty(q)
		}
		sql, err := c.UpdateWhere(r.Values, crit.Where)
		if err != nil {
			return sqlgen.Query{}, err
		}
		return nonEmpty(sqlgen.Query{SQL: sql})

	case StatementDelete:
		if crit.Where.IsEmpty() {
			q := sqlgen.Query{SQL: c.Delete()}
			if params {
				q.Args = []any{}
			}
			return q, nil
		}
		if params {
			return c.DeleteWhereParams(crit.Where)
		}
		sql, err := c.DeleteWhere(crit.Where)
		return sqlgen.Query{SQL: sql}, err

	default:
		sel := composer.SelectQuery{Columns: r.Select, Alias: r.Alias, Criteria: crit}
		if params {
			return c.SelectParams(sel)
		}
		sql, err := c.Select(sel)
		return sqlgen.Query{SQL: sql}, err
	}
}

// Unconditional reports whether the request is an UPDATE or DELETE with no
// WHERE expression.
func (r *Request) Unconditional() bool {
	return (r.Statement == StatementUpdate || r.Statement == StatementDelete) &&
		strings.TrimSpace(r.Where) == ""
}

func nonEmpty(q sqlgen.Query) (sqlgen.Query, error) {
	if q.SQL == "" {
		return sqlgen.Query{}, errNothingToWrite
	}
	return q, nil
}
