// Package commands implements the sqlcomposer CLI commands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/satishbabariya/sqlcomposer/cli/internal/config"
	"github.com/satishbabariya/sqlcomposer/cli/internal/version"
	"github.com/satishbabariya/sqlcomposer/internal/database"
	"github.com/satishbabariya/sqlcomposer/internal/debug"
	"github.com/satishbabariya/sqlcomposer/query/sqlgen"
)

// app is the state shared by the commands of one invocation.
type app struct {
	v   *viper.Viper
	cfg *config.Config

	// open creates database adapters; tests replace it.
	open func(database.Config) (database.Adapter, error)
}

// Execute is the main entry point for the CLI
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand creates the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{v: config.New(), open: database.Open})
}

func newRootCommand(a *app) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "sqlcomposer",
		Short: "Compose dialect-aware SQL statements",
		Long: `sqlcomposer renders SELECT, INSERT, UPDATE and DELETE statements for
PostgreSQL, MySQL and SQLite from a table definition and a request file,
with inline literals or bind parameters.`,
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				a.v.SetConfigFile(configFile)
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			debug.Init(cfg.Debug)
			debug.Debug("config loaded", "dialect", cfg.Dialect, "provider", cfg.Provider)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default .sqlcomposer.yaml)")
	flags.String("dialect", "", "SQL dialect: postgres, mysql or sqlite")
	flags.String("database-url", "", "database connection URL (default $DATABASE_URL)")
	flags.Bool("debug", false, "log composed statements to stderr")

	for key, flag := range map[string]string{
		"dialect":      "dialect",
		"database_url": "database-url",
		"debug":        "debug",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	cmd.AddCommand(NewComposeCommand(a))
	cmd.AddCommand(NewOpsCommand(a))
	cmd.AddCommand(NewDBCommand(a))
	cmd.AddCommand(NewVersionCommand())
	return cmd
}

func (a *app) translator() (*sqlgen.SQLTranslator, error) {
	tr, err := sqlgen.NewTranslator(a.cfg.Dialect)
	if err != nil {
		return nil, fmt.Errorf("dialect %q: %w", a.cfg.Dialect, err)
	}
	return tr, nil
}
