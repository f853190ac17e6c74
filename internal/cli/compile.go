package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/provesql/provesql/internal/canonical"
	"github.com/provesql/provesql/internal/catalog"
	"github.com/provesql/provesql/internal/compiler"
	"github.com/provesql/provesql/internal/pplan"
	"github.com/provesql/provesql/internal/typearith"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Schema   string // schema catalog directory (CUE)
	Database string // SQLite database path
	Output   string // output file path
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <plan.yaml>",
		Short: "Compile a relational plan into a provable plan",
		Long: `Compile a YAML relational plan into the provable plan form, resolving
table schemas from a CUE catalog (--schema) or a SQLite database (--db).

The compiled plan is emitted as canonical JSON: byte-identical output
for equal plans.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "schema catalog directory (CUE files)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to read schemas from")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, planPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
		TraceID:   NewTraceID(),
	}

	accessor, closer, err := openAccessor(opts)
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
	formatter.VerboseLog("Decoded plan from %s", planPath)

	compiled, err := compiler.CompilePlan(plan, accessor)
	if err != nil {
		return outputCompileError(formatter, err)
	}

	out, err := canonical.Marshal(compiled)
	if err != nil {
		return outputCommandError(formatter,
			&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("serializing plan: %v", err)})
	}
	formatter.VerboseLog("Compiled plan reads %d table(s)", len(pplan.Tables(compiled)))

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, append(out, '\n'), 0644); err != nil {
			return outputCommandError(formatter,
				&LoadError{Code: ErrCodeWriteFailed, Message: fmt.Sprintf("writing output file: %v", err)})
		}
		formatter.VerboseLog("Wrote compiled plan to %s", opts.Output)
	}

	if formatter.Format == "json" {
		schema := compiled.Schema()
		return formatter.Success(map[string]any{
			"plan":   string(out),
			"schema": schema,
		})
	}
	fmt.Fprintln(formatter.Writer, string(out))
	return nil
}

// openAccessor picks the schema source: an explicit --schema or --db flag
// first, then the config file defaults.
func openAccessor(opts *CompileOptions) (catalog.SchemaAccessor, func() error, error) {
	schema, database := opts.Schema, opts.Database
	if schema == "" && database == "" && opts.Config != nil {
		schema, database = opts.Config.Schema, opts.Config.Database
	}
	switch {
	case schema != "" && database != "":
		return nil, nil, &LoadError{Code: ErrCodeGeneric, Message: "--schema and --db are mutually exclusive"}
	case schema != "":
		acc, err := LoadCatalog(schema)
		if err != nil {
			return nil, nil, err
		}
		return acc, nil, nil
	case database != "":
		acc, err := catalog.OpenSQLite(database)
		if err != nil {
			return nil, nil, &LoadError{Code: ErrCodeNotFound, Message: err.Error()}
		}
		return acc, acc.Close, nil
	default:
		return nil, nil, &LoadError{Code: ErrCodeGeneric, Message: "a schema source is required: --schema or --db"}
	}
}

// outputCommandError reports a command-level failure (exit code 2).
func outputCommandError(formatter *OutputFormatter, err error) error {
	code := ErrCodeGeneric
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		code = loadErr.Code
		_ = formatter.Error(code, loadErr.Message, nil)
	} else {
		_ = formatter.Error(code, err.Error(), nil)
	}
	return WrapExitError(ExitCommandError, err.Error(), err)
}

// outputCompileError reports a plan rejection (exit code 1) with the
// compiler's taxonomy code.
func outputCompileError(formatter *OutputFormatter, err error) error {
	code, message := compileErrorCode(err)
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitFailure, fmt.Sprintf("%s: %s", code, message), err)
}

// compileErrorCode extracts a taxonomy code and message from a
// compilation error. Type-arithmetic errors keep the engine's own code.
func compileErrorCode(err error) (string, string) {
	if code, ok := compiler.CodeOf(err); ok {
		var ce *compiler.Error
		errors.As(err, &ce)
		return string(code), ce.Message
	}
	if code, ok := typearith.CodeOf(err); ok {
		return string(code), err.Error()
	}
	return ErrCodeGeneric, err.Error()
}
