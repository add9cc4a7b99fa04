package sqlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/satishbabariya/sqlcomposer/query/criteria"
)

// Dialect names a SQL dialect.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

// Dialects returns the supported dialects.
func Dialects() []Dialect {
	return []Dialect{Postgres, MySQL, SQLite}
}

// ParseDialect resolves a dialect or provider name.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgresql", "postgres":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, s)
	}
}

func (d Dialect) String() string { return string(d) }

type dialectRules struct {
	placeholder func(n int) string

	// escapeBackslash doubles backslashes in string literals.
	escapeBackslash bool

	// tokens overrides operator tokens.
	tokens map[criteria.FilterOp]string

	// unsupported operators fail with UnsupportedOperatorError.
	unsupported map[criteria.FilterOp]bool

	// offsetOnlyLimit is the LIMIT emitted when only an offset is given.
	// Empty means OFFSET may stand alone.
	offsetOnlyLimit string
}

func dollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }

func questionPlaceholder(int) string { return "?" }

// postgresOnly lists operators with no equivalent outside PostgreSQL.
var postgresOnly = []criteria.FilterOp{
	criteria.ILike,
	criteria.NotILike,
	criteria.SimilarTo,
	criteria.NotSimilarTo,
	criteria.RegexpCaseInsensitive,
	criteria.NotRegexpCaseInsensitive,
	criteria.Contains,
	criteria.IsContainedBy,
	criteria.Overlaps,
	criteria.JSONContains,
	criteria.JSONIsContainedBy,
	criteria.JSONHasKey,
	criteria.JSONHasAnyKey,
	criteria.JSONHasAllKeys,
	criteria.ContainsString,
	criteria.NotContainsString,
	criteria.ContainsStringCaseInsensitive,
	criteria.NotContainsStringCaseInsensitive,
	criteria.OverlapsGeometry,
	criteria.ContainsGeometry,
	criteria.IsContainedByGeometry,
	criteria.Intersects,
	criteria.ContainsInet,
	criteria.IsContainedByInet,
	criteria.IsSubnet,
	criteria.IsSupernet,
	criteria.FulltextMatch,
	criteria.FulltextQuery,
}

func opSet(groups ...[]criteria.FilterOp) map[criteria.FilterOp]bool {
	m := make(map[criteria.FilterOp]bool)
	for _, g := range groups {
		for _, op := range g {
			m[op] = true
		}
	}
	return m
}

var (
	postgresRules = &dialectRules{
		placeholder: dollarPlaceholder,
	}

	mysqlRules = &dialectRules{
		placeholder:     questionPlaceholder,
		escapeBackslash: true,
		tokens: map[criteria.FilterOp]string{
			criteria.Regexp:            "REGEXP",
			criteria.NotRegexp:         "NOT REGEXP",
			criteria.IsNotDistinctFrom: "<=>",
		},
		unsupported:     opSet(postgresOnly, []criteria.FilterOp{criteria.IsDistinctFrom}),
		offsetOnlyLimit: "18446744073709551615",
	}

	sqliteRules = &dialectRules{
		placeholder: questionPlaceholder,
		tokens: map[criteria.FilterOp]string{
			criteria.Regexp:            "REGEXP",
			criteria.NotRegexp:         "NOT REGEXP",
			criteria.IsDistinctFrom:    "IS NOT",
			criteria.IsNotDistinctFrom: "IS",
		},
		unsupported:     opSet(postgresOnly, []criteria.FilterOp{criteria.Any, criteria.All, criteria.Some}),
		offsetOnlyLimit: "-1",
	}
)

func rulesFor(d Dialect) *dialectRules {
	switch d {
	case MySQL:
		return mysqlRules
	case SQLite:
		return sqliteRules
	default:
		return postgresRules
	}
}
