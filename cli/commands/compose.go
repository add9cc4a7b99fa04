package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqlcomposer/cli/internal/ui"
	"github.com/satishbabariya/sqlcomposer/cli/internal/watch"
)

// NewComposeCommand creates the compose command.
func NewComposeCommand(a *app) *cobra.Command {
	var params, raw, watchFile bool

	cmd := &cobra.Command{
		Use:   "compose <request.yaml>",
		Short: "Compose the statement described by a request file",
		Long: `Compose the statement described by a request file and print it.

With --params values are bound and the bind list is printed after the
statement. With --watch the request is recomposed whenever the file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			run := func() error {
				return a.compose(out, args[0], params, raw)
			}
			if !watchFile {
				return run()
			}

			w, err := watch.NewWatcher(args[0], run)
			if err != nil {
				return err
			}
			w.OnError = func(err error) {
				ui.PrintError(cmd.ErrOrStderr(), "%v", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			ui.PrintInfo(cmd.ErrOrStderr(), "watching %s (Ctrl+C to stop)", args[0])
			return w.Run(ctx)
		},
	}

	cmd.Flags().BoolVarP(&params, "params", "p", false, "bind values as parameters")
	cmd.Flags().BoolVar(&raw, "raw", false, "print only the statement and bind values, unstyled")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "recompose when the request file changes")
	return cmd
}

func (a *app) compose(out io.Writer, path string, params, raw bool) error {
	tr, err := a.translator()
	if err != nil {
		return err
	}

	req, err := LoadRequest(path)
	if err != nil {
		return err
	}

	q, err := req.Compose(tr, params)
	if err != nil {
		return err
	}

	if raw {
		fmt.Fprintln(out, q.SQL)
		for i, v := range q.Args {
			fmt.Fprintf(out, "%d\t%v\n", i+1, v)
		}
		return nil
	}

	ui.PrintSQL(out, q.SQL)
	if !params {
		return nil
	}
	if len(q.Args) == 0 {
		ui.PrintInfo(out, "no bind values")
		return nil
	}
	return ui.PrintTable(out, []string{"#", "Value", "Type"}, argRows(q.Args))
}

func argRows(args []any) [][]string {
	rows := make([][]string, len(args))
	for i, v := range args {
		typ := "nil"
		if v != nil {
			typ = fmt.Sprintf("%T", v)
		}
		rows[i] = []string{strconv.Itoa(i + 1), fmt.Sprint(v), typ}
	}
	return rows
}
