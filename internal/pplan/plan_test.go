package pplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provesql/provesql/internal/catalog"
	"github.com/provesql/provesql/internal/coltype"
	"github.com/provesql/provesql/internal/pexpr"
)

func ordersTable() *Table {
	return &Table{
		Ref: catalog.TableRef{Name: "orders"},
		Columns: []catalog.Field{
			{Name: "id", Type: coltype.BigInt()},
			{Name: "region", Type: coltype.VarChar()},
			{Name: "amount", Type: coltype.MustDecimal(10, 2)},
		},
	}
}

func usersTable() *Table {
	return &Table{
		Ref: catalog.TableRef{Name: "users"},
		Columns: []catalog.Field{
			{Name: "id", Type: coltype.BigInt()},
			{Name: "name", Type: coltype.VarChar()},
		},
	}
}

func TestProjection_Schema(t *testing.T) {
	proj := &Projection{
		Input: ordersTable(),
		Exprs: []AliasedExpr{
			{Expr: pexpr.NewColumn("id", coltype.BigInt()), Alias: "order_id"},
			{Expr: pexpr.NewColumn("amount", coltype.MustDecimal(10, 2)), Alias: "amount"},
		},
	}
	assert.Equal(t, []catalog.Field{
		{Name: "order_id", Type: coltype.BigInt()},
		{Name: "amount", Type: coltype.MustDecimal(10, 2)},
	}, proj.Schema())
}

func TestGroupBy_Schema(t *testing.T) {
	sum, err := pexpr.NewAdd(
		pexpr.NewColumn("amount", coltype.MustDecimal(10, 2)),
		pexpr.NewColumn("amount", coltype.MustDecimal(10, 2)))
	require.NoError(t, err)

	gb := &GroupBy{
		Table: ordersTable(),
		Where: pexpr.NewLiteral(pexpr.BoolValue(true)),
		GroupCols: []AliasedExpr{
			{Expr: pexpr.NewColumn("region", coltype.VarChar()), Alias: "region"},
		},
		Sums:       []AliasedExpr{{Expr: sum, Alias: "total"}},
		CountAlias: "n",
	}
	schema := gb.Schema()
	require.Len(t, schema, 3)
	assert.Equal(t, "region", schema[0].Name)
	assert.Equal(t, "total", schema[1].Name)
	assert.Equal(t, catalog.Field{Name: "n", Type: coltype.BigInt()}, schema[2])
}

func TestSlice_SchemaPassesThrough(t *testing.T) {
	fetch := int64(10)
	slice := &Slice{Input: ordersTable(), Skip: 2, Fetch: &fetch}
	assert.Equal(t, ordersTable().Schema(), slice.Schema())
}

func TestSortMergeJoin_Schema(t *testing.T) {
	join := &SortMergeJoin{
		Left:        ordersTable(),
		Right:       usersTable(),
		LeftIdx:     []int{0},
		RightIdx:    []int{0},
		ColumnNames: []string{"id", "region", "amount", "name"},
	}
	assert.Equal(t, []catalog.Field{
		{Name: "id", Type: coltype.BigInt()},
		{Name: "region", Type: coltype.VarChar()},
		{Name: "amount", Type: coltype.MustDecimal(10, 2)},
		{Name: "name", Type: coltype.VarChar()},
	}, join.Schema())
}

func TestTables_FirstUseOrderDeduplicated(t *testing.T) {
	join := &SortMergeJoin{
		Left:        ordersTable(),
		Right:       usersTable(),
		LeftIdx:     []int{0},
		RightIdx:    []int{0},
		ColumnNames: []string{"id", "region", "amount", "name"},
	}
	union := &Union{
		Inputs:  []Plan{join, ordersTable()},
		Columns: join.Schema(),
	}
	refs := Tables(union)
	assert.Equal(t, []catalog.TableRef{{Name: "orders"}, {Name: "users"}}, refs)
}

func TestEmpty_Schema(t *testing.T) {
	assert.Empty(t, (&Empty{}).Schema())
}
