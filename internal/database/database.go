// Package database is the live-connection helper: it opens a connection for
// a configured provider, probes it and executes composed statements.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/satishbabariya/sqlcomposer/query/sqlgen"
)

var (
	// ErrNotConnected is returned when an adapter is used before Connect.
	ErrNotConnected = errors.New("database not connected")

	// ErrUnsupportedProvider is returned by Open for unregistered providers.
	ErrUnsupportedProvider = errors.New("unsupported database provider")
)

// Adapter defines the database adapter interface.
type Adapter interface {
	// Connect establishes a database connection.
	Connect(ctx context.Context) error

	// Disconnect closes the database connection.
	Disconnect(ctx context.Context) error

	// Execute executes a SQL statement.
	Execute(ctx context.Context, query string, args ...any) (sql.Result, error)

	// Query executes a query that returns rows.
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)

	// QueryRow executes a query that returns a single row.
	QueryRow(ctx context.Context, query string, args ...any) (*sql.Row, error)

	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// Dialect returns the SQL dialect statements must be composed in.
	Dialect() sqlgen.Dialect

	// DB returns the underlying pool, or nil before Connect.
	DB() *sql.DB
}

// Config holds database connection configuration.
type Config struct {
	Provider       string
	URL            string
	MaxConnections int
	MaxIdleTime    int // seconds
	ConnectTimeout int // seconds
}

// Factory creates an unconnected adapter.
type Factory func(cfg Config) (Adapter, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// Register makes a provider available to Open. Provider packages call it
// from init; the names are matched case-insensitively.
func Register(factory Factory, names ...string) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	for _, name := range names {
		name = strings.ToLower(name)
		if _, dup := factories[name]; dup {
			panic("database: Register called twice for provider " + name)
		}
		factories[name] = factory
	}
}

// Providers returns the registered provider names.
func Providers() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates an adapter for cfg.Provider. The adapter is not connected.
func Open(cfg Config) (Adapter, error) {
	factoriesMu.RLock()
	factory, ok := factories[strings.ToLower(cfg.Provider)]
	factoriesMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
	}
	return factory(cfg)
}

// Probe runs SELECT 1 and checks the answer.
func Probe(ctx context.Context, a Adapter) error {
	row, err := a.QueryRow(ctx, "SELECT 1")
	if err != nil {
		return err
	}

	var n int
	if err := row.Scan(&n); err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("probe failed: SELECT 1 returned %d", n)
	}
	return nil
}
