package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqlcomposer/cli/internal/ui"
	"github.com/satishbabariya/sqlcomposer/internal/database"
	"github.com/satishbabariya/sqlcomposer/query/sqlgen"
	"github.com/satishbabariya/sqlcomposer/schema"
	"github.com/satishbabariya/sqlcomposer/schema/introspect"
)

var (
	errNoDatabaseURL = errors.New("no database URL: set DATABASE_URL or pass --database-url")
	errSelectExec    = errors.New("db exec does not run SELECT statements; use compose")
	errUnconditional = errors.New("refusing to run UPDATE or DELETE without a where expression; pass --all")
)

// NewDBCommand creates the parent db command.
func NewDBCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Work against a live database",
	}

	cmd.AddCommand(newDBPingCommand(a))
	cmd.AddCommand(newDBTablesCommand(a))
	cmd.AddCommand(newDBDescribeCommand(a))
	cmd.AddCommand(newDBExecCommand(a))
	return cmd
}

func newDBPingCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Connect, ping and run SELECT 1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDatabase(cmd.Context(), func(ctx context.Context, db database.Adapter) error {
				start := time.Now()
				if err := db.Ping(ctx); err != nil {
					return fmt.Errorf("ping failed: %w", err)
				}
				if err := database.Probe(ctx, db); err != nil {
					return err
				}
				ui.PrintSuccess(cmd.OutOrStdout(), "%s database reachable (%s)", db.Dialect(), time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

func newDBTablesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withIntrospector(cmd.Context(), func(ctx context.Context, in introspect.Introspector) error {
				names, err := in.Tables(ctx)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}

func newDBDescribeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <table>",
		Short: "Print a table's definition as YAML",
		Long: `Introspect a table and print its definition in the YAML form request
files embed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withIntrospector(cmd.Context(), func(ctx context.Context, in introspect.Introspector) error {
				table, err := in.Table(ctx, args[0])
				if err != nil {
					return err
				}
				data, err := schema.MarshalDefinition(table)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}
}

func newDBExecCommand(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "exec <request.yaml>",
		Short: "Compose an INSERT, UPDATE or DELETE and execute it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := LoadRequest(args[0])
			if err != nil {
				return err
			}
			if req.Statement == StatementSelect {
				return errSelectExec
			}
			if req.Unconditional() && !all {
				return errUnconditional
			}

			return a.withDatabase(cmd.Context(), func(ctx context.Context, db database.Adapter) error {
				tr, err := sqlgen.NewTranslator(string(db.Dialect()))
				if err != nil {
					return err
				}
				q, err := req.Compose(tr, true)
				if err != nil {
					return err
				}

				res, err := db.Execute(ctx, q.SQL, q.Args...)
				if err != nil {
					return fmt.Errorf("exec failed: %w", err)
				}
				n, err := res.RowsAffected()
				if err != nil {
					return err
				}
				ui.PrintSuccess(cmd.OutOrStdout(), "%s: %d row(s) affected", req.Statement, n)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "allow UPDATE and DELETE without a where expression")
	return cmd
}

func (a *app) withDatabase(ctx context.Context, fn func(context.Context, database.Adapter) error) error {
	if a.cfg.DatabaseURL == "" {
		return errNoDatabaseURL
	}

	db, err := a.open(a.cfg.Database())
	if err != nil {
		return err
	}
	if err := db.Connect(ctx); err != nil {
		return err
	}
	defer db.Disconnect(ctx)

	return fn(ctx, db)
}

func (a *app) withIntrospector(ctx context.Context, fn func(context.Context, introspect.Introspector) error) error {
	return a.withDatabase(ctx, func(ctx context.Context, db database.Adapter) error {
		in, err := introspect.NewIntrospector(db.DB(), string(db.Dialect()))
		if err != nil {
			return err
		}
		return fn(ctx, in)
	})
}
