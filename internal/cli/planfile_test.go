package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provesql/provesql/internal/logical"
)

func TestDecodePlan_FilterLimit(t *testing.T) {
	data, err := os.ReadFile("testdata/plans/filter_limit.yaml")
	require.NoError(t, err)

	plan, err := DecodePlan(data)
	require.NoError(t, err)

	limit, ok := plan.(*logical.Limit)
	require.True(t, ok, "expected Limit, got %T", plan)
	assert.Equal(t, int64(1), limit.Skip)
	require.NotNil(t, limit.Fetch)
	assert.Equal(t, int64(2), *limit.Fetch)

	scan, ok := limit.Input.(*logical.TableScan)
	require.True(t, ok, "expected TableScan, got %T", limit.Input)
	assert.Equal(t, "orders", scan.Table.Name)
	assert.Equal(t, []int{0, 2}, scan.Projection)
	require.Len(t, scan.Filters, 1)

	binary, ok := scan.Filters[0].(*logical.Binary)
	require.True(t, ok)
	assert.Equal(t, logical.OpGt, binary.Op)
	assert.Equal(t, &logical.Column{Name: "amount"}, binary.Left)

	lit, ok := binary.Right.(*logical.Literal)
	require.True(t, ok)
	dec, ok := lit.Value.(logical.DecimalValue)
	require.True(t, ok)
	assert.Equal(t, 10, dec.Precision)
	assert.Equal(t, 2, dec.Scale)
}

func TestDecodePlan_GroupBy(t *testing.T) {
	data, err := os.ReadFile("testdata/plans/group_by.yaml")
	require.NoError(t, err)

	plan, err := DecodePlan(data)
	require.NoError(t, err)

	proj, ok := plan.(*logical.Projection)
	require.True(t, ok, "expected Projection, got %T", plan)
	assert.Equal(t, []string{"region", "total", "n"}, proj.Names)

	agg, ok := proj.Input.(*logical.Aggregate)
	require.True(t, ok, "expected Aggregate, got %T", proj.Input)
	require.Len(t, agg.Aggregates, 2)
	assert.Equal(t, []string{"region", "sum(amount)", "count(id)"}, agg.OutputNames())
}

func TestDecodePlan_QualifiedTableName(t *testing.T) {
	plan, err := DecodePlan([]byte("plan: {scan: {table: analytics.orders, columns: [0]}}"))
	require.NoError(t, err)

	scan := plan.(*logical.TableScan)
	assert.Equal(t, "analytics", scan.Table.Schema)
	assert.Equal(t, "orders", scan.Table.Name)
}

func TestDecodePlan_Rejections(t *testing.T) {
	cases := map[string]string{
		"no plan key":      "tables: {}",
		"empty node":       "plan: {}",
		"unknown operator": `plan: {scan: {table: t, columns: [0], filters: [{binary: {op: "**", left: {column: a}, right: {column: b}}}]}}`,
		"unknown join":     "plan: {join: {kind: cross, left: {empty: {}}, right: {empty: {}}}}",
		"missing table":    "plan: {scan: {columns: [0]}}",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePlan([]byte(in))
			assert.Error(t, err)
		})
	}
}
