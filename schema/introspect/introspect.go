// Package introspect reads table metadata from a live database.
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/satishbabariya/sqlcomposer/schema"
)

// Introspector reads table definitions from a database.
type Introspector interface {
	// Table reads one table's columns in declaration order.
	Table(ctx context.Context, name string) (*schema.Table, error)
	// Tables lists the base tables visible to the connection.
	Tables(ctx context.Context) ([]string, error)
}

// Querier is the subset of *sql.DB the introspectors use.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// NewIntrospector creates a new introspector for the given database
func NewIntrospector(db Querier, provider string) (Introspector, error) {
	switch strings.ToLower(provider) {
	case "postgresql", "postgres":
		return &PostgresIntrospector{db: db}, nil
	case "mysql":
		return &MySQLIntrospector{db: db}, nil
	case "sqlite", "sqlite3":
		return &SQLiteIntrospector{db: db}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
}

// columnRow is one scanned column before type normalization.
type columnRow struct {
	name string
	typ  string
}

func buildTable(name string, rows []columnRow) (*schema.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}

	b := schema.Define(name)
	for _, r := range rows {
		b.Column(r.name, schema.NormalizeType(r.typ))
	}

	t, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntrospectionFailed, err)
	}
	return t, nil
}

func scanNames(rows *sql.Rows) ([]string, error) {
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
