package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/provesql/provesql/internal/compiler"
	"github.com/provesql/provesql/internal/pplan"
)

// TablesOptions holds flags for the tables command.
type TablesOptions struct {
	*RootOptions
	Schema   string
	Database string
}

// NewTablesCommand creates the tables command: list the tables a plan
// reads, in first-use order. Proof generation fetches commitments for
// exactly this list.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TablesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "tables <plan.yaml>",
		Short:         "List the tables a plan reads",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "schema catalog directory (CUE files)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to read schemas from")

	return cmd
}

func runTables(opts *TablesOptions, planPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   NewTraceID(),
	}

	compileOpts := &CompileOptions{RootOptions: opts.RootOptions, Schema: opts.Schema, Database: opts.Database}
	accessor, closer, err := openAccessor(compileOpts)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	if closer != nil {
		defer closer()
	}

	data, err := os.ReadFile(planPath)
	if err != nil {
		return outputCommandError(formatter,
			&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading plan file: %v", err)})
	}
	plan, err := DecodePlan(data)
	if err != nil {
		return outputCommandError(formatter, err)
	}

	compiled, err := compiler.CompilePlan(plan, accessor)
	if err != nil {
		return outputCompileError(formatter, err)
	}

	refs := pplan.Tables(compiled)
	if formatter.Format == "json" {
		names := make([]string, len(refs))
		for i, ref := range refs {
			names[i] = ref.String()
		}
		return formatter.Success(map[string]any{"tables": names})
	}
	for _, ref := range refs {
		fmt.Fprintln(formatter.Writer, ref)
	}
	return nil
}
