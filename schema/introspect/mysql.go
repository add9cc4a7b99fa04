package introspect

import (
	"context"
	"fmt"

	"github.com/satishbabariya/sqlcomposer/schema"
)

// MySQLIntrospector reads information_schema on MySQL for the current
// database.
type MySQLIntrospector struct {
	db Querier
}

var _ Introspector = (*MySQLIntrospector)(nil)

// Table reads a table from the connection's current database.
func (i *MySQLIntrospector) Table(ctx context.Context, name string) (*schema.Table, error) {
	query := `
		SELECT
			COLUMN_NAME,
			COLUMN_TYPE
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		ORDER BY ordinal_position
	`

	rows, err := i.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []columnRow
	for rows.Next() {
		var col columnRow
		if err := rows.Scan(&col.name, &col.typ); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return buildTable(name, columns)
}

// Tables lists base tables in the current database.
func (i *MySQLIntrospector) Tables(ctx context.Context) ([]string, error) {
	query := `
		SELECT TABLE_NAME
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_type = 'BASE TABLE'
		ORDER BY TABLE_NAME
	`

	rows, err := i.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	return scanNames(rows)
}
