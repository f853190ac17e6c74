package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provesql/provesql/internal/compiler"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCompile_TextOutput(t *testing.T) {
	out, _, err := execute(t,
		"compile", "testdata/plans/filter_limit.yaml", "--schema", "testdata/schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"plan":"slice"`)
	assert.Contains(t, out, `"plan":"filter"`)
}

func TestCompile_JSONOutput(t *testing.T) {
	out, _, err := execute(t,
		"compile", "testdata/plans/filter_limit.yaml",
		"--schema", "testdata/schema", "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)
}

func TestCompile_GroupByPlan(t *testing.T) {
	out, _, err := execute(t,
		"compile", "testdata/plans/group_by.yaml", "--schema", "testdata/schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"plan":"group_by"`)
	assert.Contains(t, out, `"count_alias":"n"`)
	assert.Contains(t, out, `"alias":"total"`)
}

func TestCompile_Deterministic(t *testing.T) {
	first, _, err := execute(t,
		"compile", "testdata/plans/filter_limit.yaml", "--schema", "testdata/schema")
	require.NoError(t, err)
	second, _, err := execute(t,
		"compile", "testdata/plans/filter_limit.yaml", "--schema", "testdata/schema")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompile_RejectedPlanExitsWithFailure(t *testing.T) {
	out, _, err := execute(t,
		"compile", "testdata/plans/left_join.yaml",
		"--schema", "testdata/schema", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(compiler.CodeUnsupportedLogicalPlan), resp.Error.Code)
}

func TestCompile_MissingSchemaSourceIsCommandError(t *testing.T) {
	_, _, err := execute(t, "compile", "testdata/plans/filter_limit.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCompile_WritesOutputFile(t *testing.T) {
	path := t.TempDir() + "/plan.json"
	_, _, err := execute(t,
		"compile", "testdata/plans/filter_limit.yaml",
		"--schema", "testdata/schema", "-o", path)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestCheck_ProvablePlan(t *testing.T) {
	out, _, err := execute(t,
		"check", "testdata/plans/filter_limit.yaml", "--schema", "testdata/schema")
	require.NoError(t, err)
	assert.Contains(t, out, "plan is provable")
}

func TestTables_ListsReferencedTables(t *testing.T) {
	out, _, err := execute(t,
		"tables", "testdata/plans/filter_limit.yaml", "--schema", "testdata/schema")
	require.NoError(t, err)
	assert.Contains(t, out, "orders")
}
