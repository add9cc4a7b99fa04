package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/satishbabariya/sqlcomposer/schema"
)

// PostgresIntrospector reads information_schema on PostgreSQL.
type PostgresIntrospector struct {
	db Querier
}

var _ Introspector = (*PostgresIntrospector)(nil)

// Table reads a table. The name may be schema-qualified; the default schema
// is public.
func (i *PostgresIntrospector) Table(ctx context.Context, name string) (*schema.Table, error) {
	tableSchema, tableName := "public", name
	if before, after, ok := strings.Cut(name, "."); ok {
		tableSchema, tableName = before, after
	}

	query := `
		SELECT
			column_name,
			data_type,
			udt_name
		FROM information_schema.columns
		WHERE table_schema = $1
		  AND table_name = $2
		ORDER BY ordinal_position
	`

	rows, err := i.db.QueryContext(ctx, query, tableSchema, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []columnRow
	for rows.Next() {
		var col columnRow
		var dataType, udtName string
		if err := rows.Scan(&col.name, &dataType, &udtName); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		col.typ = postgresType(dataType, udtName)
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return buildTable(name, columns)
}

// Tables lists base tables in the public schema.
func (i *PostgresIntrospector) Tables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := i.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	return scanNames(rows)
}

// postgresType prefers udt_name for arrays and user-defined types, where
// data_type carries no usable name.
func postgresType(dataType, udtName string) string {
	switch dataType {
	case "ARRAY", "USER-DEFINED":
		return udtName
	default:
		return dataType
	}
}
