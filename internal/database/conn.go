package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/satishbabariya/sqlcomposer/internal/debug"
	"github.com/satishbabariya/sqlcomposer/query/sqlgen"
)

// Conn is the database/sql backed Adapter shared by the provider packages.
type Conn struct {
	driver  string
	dsn     string
	dialect sqlgen.Dialect
	config  Config
	db      *sql.DB

	// configure tunes a freshly opened pool; afterConnect runs once the
	// ping succeeds.
	configure    func(db *sql.DB, cfg Config)
	afterConnect func(ctx context.Context, db *sql.DB) error
}

var _ Adapter = (*Conn)(nil)

// ConnOption customizes a Conn.
type ConnOption func(*Conn)

// WithPoolConfig replaces the default pool settings.
func WithPoolConfig(fn func(db *sql.DB, cfg Config)) ConnOption {
	return func(c *Conn) { c.configure = fn }
}

// WithAfterConnect runs fn after a successful connect.
func WithAfterConnect(fn func(ctx context.Context, db *sql.DB) error) ConnOption {
	return func(c *Conn) { c.afterConnect = fn }
}

// NewConn creates an unconnected adapter for a database/sql driver.
func NewConn(driver, dsn string, dialect sqlgen.Dialect, cfg Config, opts ...ConnOption) *Conn {
	c := &Conn{
		driver:    driver,
		dsn:       dsn,
		dialect:   dialect,
		config:    cfg,
		configure: defaultPool,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewConnWithDB wraps an already open pool. Connect is then a no-op.
func NewConnWithDB(db *sql.DB, dialect sqlgen.Dialect, cfg Config) *Conn {
	return &Conn{db: db, dialect: dialect, config: cfg}
}

func defaultPool(db *sql.DB, cfg Config) {
	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetMaxIdleConns(max(cfg.MaxConnections/2, 1))
	}
	if cfg.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(time.Duration(cfg.MaxIdleTime) * time.Second)
	}
}

// Connect opens the pool and pings it within the configured timeout.
func (c *Conn) Connect(ctx context.Context) error {
	if c.db != nil {
		return nil
	}

	db, err := sql.Open(c.driver, c.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if c.configure != nil {
		c.configure(db, c.config)
	}

	if c.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.config.ConnectTimeout)*time.Second)
		defer cancel()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if c.afterConnect != nil {
		if err := c.afterConnect(ctx, db); err != nil {
			db.Close()
			return err
		}
	}

	debug.Debug("connected", "provider", c.config.Provider, "dialect", c.dialect)
	c.db = db
	return nil
}

// Disconnect closes the database connection.
func (c *Conn) Disconnect(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Execute executes a statement without returning rows.
func (c *Conn) Execute(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.db == nil {
		return nil, ErrNotConnected
	}
	debug.Debug("execute", "sql", query, "args", args)
	return c.db.ExecContext(ctx, query, args...)
}

// Query executes a query that returns rows.
func (c *Conn) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if c.db == nil {
		return nil, ErrNotConnected
	}
	debug.Debug("query", "sql", query, "args", args)
	return c.db.QueryContext(ctx, query, args...)
}

// QueryRow executes a query that returns a single row.
func (c *Conn) QueryRow(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	if c.db == nil {
		return nil, ErrNotConnected
	}
	debug.Debug("query row", "sql", query, "args", args)
	return c.db.QueryRowContext(ctx, query, args...), nil
}

// Ping checks if the database connection is alive.
func (c *Conn) Ping(ctx context.Context) error {
	if c.db == nil {
		return ErrNotConnected
	}
	return c.db.PingContext(ctx)
}

// Dialect returns the SQL dialect.
func (c *Conn) Dialect() sqlgen.Dialect {
	return c.dialect
}

// DB returns the underlying pool.
func (c *Conn) DB() *sql.DB {
	return c.db
}
