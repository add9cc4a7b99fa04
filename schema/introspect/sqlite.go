package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/satishbabariya/sqlcomposer/schema"
)

// SQLiteIntrospector reads PRAGMA table_info on SQLite.
type SQLiteIntrospector struct {
	db Querier
}

var _ Introspector = (*SQLiteIntrospector)(nil)

// Table reads a table using PRAGMA table_info.
func (i *SQLiteIntrospector) Table(ctx context.Context, name string) (*schema.Table, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", quoteSQLiteIdent(name))

	rows, err := i.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []columnRow
	for rows.Next() {
		var cid, notNull, pk int
		var col columnRow
		var dflt sql.NullString
		if err := rows.Scan(&cid, &col.name, &col.typ, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return buildTable(name, columns)
}

// Tables lists user tables.
func (i *SQLiteIntrospector) Tables(ctx context.Context) ([]string, error) {
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table'
		  AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := i.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	return scanNames(rows)
}

func quoteSQLiteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
