package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqlcomposer/cli/internal/ui"
	"github.com/satishbabariya/sqlcomposer/query/criteria"
	"github.com/satishbabariya/sqlcomposer/query/sqlgen"
)

// NewOpsCommand creates the ops command.
func NewOpsCommand(a *app) *cobra.Command {
	var markdown, all bool

	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List the filter operators of the selected dialect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := a.translator()
			if err != nil {
				return err
			}

			rows := opRows(tr, all)
			out := cmd.OutOrStdout()
			if markdown {
				return ui.PrintMarkdown(out, opsMarkdown(tr.Dialect(), rows))
			}

			ui.PrintSection(out, fmt.Sprintf("Operators (%s)", tr.Dialect()))
			return ui.PrintTable(out, []string{"Name", "Token", "Arity", "Supported"}, rows)
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "render the reference as markdown")
	cmd.Flags().BoolVar(&all, "all", false, "include operators the dialect rejects")
	return cmd
}

func opRows(tr *sqlgen.SQLTranslator, all bool) [][]string {
	var rows [][]string
	for _, op := range criteria.FilterOps() {
		supported := tr.Supports(op)
		if !supported && !all {
			continue
		}
		token := tr.Token(op)
		if !supported {
			token = op.Token()
		}
		rows = append(rows, []string{op.String(), token, op.Arity().String(), yesNo(supported)})
	}
	return rows
}

func opsMarkdown(d sqlgen.Dialect, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Operators (%s)\n\n", d)
	b.WriteString("| Name | Token | Arity | Supported |\n|---|---|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| `%s` | `%s` | %s | %s |\n", r[0], strings.ReplaceAll(r[1], "|", `\|`), r[2], r[3])
	}
	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
