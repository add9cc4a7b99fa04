// Package sqlite registers the SQLite provider.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/satishbabariya/sqlcomposer/internal/database"
	"github.com/satishbabariya/sqlcomposer/query/sqlgen"
)

func init() {
	database.Register(New, "sqlite", "sqlite3")
}

// New creates an unconnected SQLite adapter. The sqlite:// URL
// prefix is stripped; ":memory:" opens an in-memory database.
func New(cfg database.Config) (database.Adapter, error) {
	path := Path(cfg.URL)
	if path == "" {
		return nil, fmt.Errorf("sqlite: empty database path")
	}
	return database.NewConn("sqlite3", path, sqlgen.SQLite, cfg,
		database.WithPoolConfig(pool),
		database.WithAfterConnect(enableForeignKeys),
	), nil
}

// Path returns the file path named by a sqlite URL.
func Path(raw string) string {
	for _, prefix := range []string{"sqlite://", "sqlite3://"} {
		if strings.HasPrefix(raw, prefix) {
			return strings.TrimPrefix(raw, prefix)
		}
	}
	return raw
}

// SQLite only supports one writer at a time.
func pool(db *sql.DB, _ database.Config) {
	db.SetMaxOpenConns(1)
}

func enableForeignKeys(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return nil
}
