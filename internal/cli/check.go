package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/provesql/provesql/internal/compiler"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Schema   string
	Database string
}

// NewCheckCommand creates the check command: compile a plan and report
// provability without emitting the compiled form.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <plan.yaml>",
		Short: "Check whether a plan is provable",
		Long: `Compile a YAML relational plan and report whether the proof system can
handle it. Exit code 0 means provable; 1 means the plan was rejected
with a typed error; 2 means the inputs could not be read.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "schema catalog directory (CUE files)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to read schemas from")

	return cmd
}

func runCheck(opts *CheckOptions, planPath string, cmd *cobra.Command) error {
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

	if formatter.Format == "json" {
		return formatter.Success(map[string]any{
			"provable": true,
			"columns":  len(compiled.Schema()),
		})
	}
	fmt.Fprintf(formatter.Writer, "✓ plan is provable (%d output column(s))\n", len(compiled.Schema()))
	return nil
}
