// Package postgres registers the PostgreSQL provider.
package postgres

import (
	"github.com/lib/pq"

	"github.com/satishbabariya/sqlcomposer/internal/database"
	"github.com/satishbabariya/sqlcomposer/query/sqlgen"
)

func init() {
	database.Register(New, "postgres", "postgresql")
}

// New creates an unconnected PostgreSQL adapter. Both URL and key=value
// connection strings are accepted.
func New(cfg database.Config) (database.Adapter, error) {
	if _, err := pq.NewConnector(cfg.URL); err != nil {
		return nil, err
	}
	return database.NewConn("postgres", cfg.URL, sqlgen.Postgres, cfg), nil
}
