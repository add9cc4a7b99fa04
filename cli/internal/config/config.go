// Package config resolves CLI settings from flags, the config file, the
// environment and .env files.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/sqlcomposer/internal/database"
)

// AppFs is the filesystem config and .env files are read from.
var AppFs = afero.NewOsFs()

// Config holds the application configuration
type Config struct {
	Dialect        string
	Provider       string
	DatabaseURL    string
	MaxConnections int
	MaxIdleTime    int
	ConnectTimeout int
	Debug          bool
}

// New returns a viper instance with the search paths, env prefix and
// defaults applied. Commands bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetFs(AppFs)

	v.SetConfigName(".sqlcomposer")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "sqlcomposer"))
	}

	v.SetEnvPrefix("SQLCOMPOSER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("max_connections", 10)
	v.SetDefault("max_idle_time", 300)
	v.SetDefault("connect_timeout", 5)
	v.SetDefault("debug", false)
	return v
}

// Load reads the config file (if any) and the .env files, then resolves
// the configuration. A missing config file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// .env never overrides the environment; .env.local overrides both.
	if err := loadEnvFile(".env", false); err != nil {
		return nil, err
	}
	if err := loadEnvFile(".env.local", true); err != nil {
		return nil, err
	}

	cfg := &Config{
		Dialect:        v.GetString("dialect"),
		Provider:       v.GetString("provider"),
		DatabaseURL:    v.GetString("database_url"),
		MaxConnections: v.GetInt("max_connections"),
		MaxIdleTime:    v.GetInt("max_idle_time"),
		ConnectTimeout: v.GetInt("connect_timeout"),
		Debug:          v.GetBool("debug"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DatabaseURLFromEnv()
	}
	if cfg.Provider == "" {
		cfg.Provider = DetectProvider(cfg.DatabaseURL)
	}
	if cfg.Dialect == "" {
		cfg.Dialect = cfg.Provider
	}
	return cfg, nil
}

// Database returns the connection settings for database.Open.
func (c *Config) Database() database.Config {
	return database.Config{
		Provider:       c.Provider,
		URL:            c.DatabaseURL,
		MaxConnections: c.MaxConnections,
		MaxIdleTime:    c.MaxIdleTime,
		ConnectTimeout: c.ConnectTimeout,
	}
}

// loadEnvFile sets the variables defined in name. Without overload,
// variables already in the environment are kept.
func loadEnvFile(name string, overload bool) error {
	if _, err := AppFs.Stat(name); err != nil {
		return nil
	}

	f, err := AppFs.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	for k, val := range vars {
		if _, present := os.LookupEnv(k); present && !overload {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return err
		}
	}
	return nil
}

// DatabaseURLFromEnv returns DATABASE_URL, or a PostgreSQL URL assembled
// from DB_HOST, DB_PORT, DB_NAME, DB_USER and DB_PASSWORD when DB_HOST is
// set. It returns "" when neither is available.
func DatabaseURLFromEnv() string {
	if u := os.Getenv("DATABASE_URL"); u != "" {
		return u
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + os.Getenv("DB_NAME"),
	}
	if user := os.Getenv("DB_USER"); user != "" {
		if pass, ok := os.LookupEnv("DB_PASSWORD"); ok {
			u.User = url.UserPassword(user, pass)
		} else {
			u.User = url.User(user)
		}
	}
	return u.String()
}

// DetectProvider guesses the provider from a connection URL. It defaults to
// postgres.
func DetectProvider(connStr string) string {
	switch {
	case strings.HasPrefix(connStr, "mysql://"), strings.Contains(connStr, "@tcp("):
		return "mysql"
	case strings.HasPrefix(connStr, "sqlite"), strings.HasPrefix(connStr, "file:"),
		strings.HasSuffix(connStr, ".db"), connStr == ":memory:":
		return "sqlite"
	default:
		return "postgres"
	}
}
