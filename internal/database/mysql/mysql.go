// Package mysql registers the MySQL provider.
package mysql

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/satishbabariya/sqlcomposer/internal/database"
	"github.com/satishbabariya/sqlcomposer/query/sqlgen"
)

func init() {
	database.Register(New, "mysql")
}

// New creates an unconnected MySQL adapter. cfg.URL may be a driver DSN or
// a mysql:// URL.
func New(cfg database.Config) (database.Adapter, error) {
	dsn, err := DSN(cfg.URL)
	if err != nil {
		return nil, err
	}
	return database.NewConn("mysql", dsn, sqlgen.MySQL, cfg), nil
}

// DSN converts a mysql:// URL into a driver DSN. Anything else is validated
// as a DSN and returned unchanged. parseTime is always enabled.
func DSN(raw string) (string, error) {
	if !strings.HasPrefix(raw, "mysql://") {
		c, err := mysql.ParseDSN(raw)
		if err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		c.ParseTime = true
		return c.FormatDSN(), nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid mysql url: %w", err)
	}

	c := mysql.NewConfig()
	c.Net = "tcp"
	c.Addr = u.Host
	if u.Port() == "" {
		c.Addr = u.Hostname() + ":3306"
	}
	c.DBName = strings.TrimPrefix(u.Path, "/")
	c.ParseTime = true
	if u.User != nil {
		c.User = u.User.Username()
		c.Passwd, _ = u.User.Password()
	}

	if len(u.Query()) > 0 {
		c.Params = make(map[string]string)
		for k, v := range u.Query() {
			if len(v) > 0 {
				c.Params[k] = v[0]
			}
		}
	}
	return c.FormatDSN(), nil
}
