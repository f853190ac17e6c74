package compiler

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provesql/provesql/internal/catalog"
	"github.com/provesql/provesql/internal/coltype"
	"github.com/provesql/provesql/internal/logical"
	"github.com/provesql/provesql/internal/pexpr"
	"github.com/provesql/provesql/internal/typearith"
)

func numericSchema() []catalog.Field {
	return []catalog.Field{
		{Name: "a", Type: coltype.SmallInt()},
		{Name: "b", Type: coltype.MustDecimal(25, 5)},
		{Name: "c", Type: coltype.BigInt()},
		{Name: "d", Type: coltype.BigInt()},
		{Name: "s", Type: coltype.VarChar()},
	}
}

func col(name string) *logical.Column { return &logical.Column{Name: name} }

func TestCompileExpr_ScaleAlignsAddition(t *testing.T) {
	expr := &logical.Binary{Op: logical.OpAdd, Left: col("a"), Right: col("b")}

	compiled, err := CompileExpr(expr, numericSchema())
	require.NoError(t, err)

	add, ok := compiled.(*pexpr.Add)
	require.True(t, ok, "expected Add, got %T", compiled)

	cast, ok := add.Lhs.(*pexpr.ScalingCast)
	require.True(t, ok, "expected ScalingCast on the lower-scale side, got %T", add.Lhs)
	assert.Equal(t, coltype.MustDecimal(10, 5), cast.To)
	assert.Equal(t, pexpr.NewColumn("a", coltype.SmallInt()), cast.Operand)

	assert.Equal(t, pexpr.NewColumn("b", coltype.MustDecimal(25, 5)), add.Rhs)
	assert.Equal(t, coltype.MustDecimal(26, 5), add.ResultType())
}

func TestCompileExpr_SameScaleAdditionHasNoCast(t *testing.T) {
	expr := &logical.Binary{Op: logical.OpAdd, Left: col("c"), Right: col("d")}

	compiled, err := CompileExpr(expr, numericSchema())
	require.NoError(t, err)

	add := compiled.(*pexpr.Add)
	assert.IsType(t, &pexpr.Column{}, add.Lhs)
	assert.IsType(t, &pexpr.Column{}, add.Rhs)
	assert.Equal(t, coltype.BigInt(), add.ResultType())
}

func TestCompileExpr_NotEqualsDesugars(t *testing.T) {
	expr := &logical.Binary{Op: logical.OpNotEq, Left: col("c"), Right: col("d")}

	compiled, err := CompileExpr(expr, numericSchema())
	require.NoError(t, err)

	not, ok := compiled.(*pexpr.Not)
	require.True(t, ok, "expected Not, got %T", compiled)
	assert.IsType(t, &pexpr.Equals{}, not.Operand)
}

func TestCompileExpr_NonStrictComparisonsDesugar(t *testing.T) {
	lte := &logical.Binary{Op: logical.OpLtEq, Left: col("c"), Right: col("d")}
	compiled, err := CompileExpr(lte, numericSchema())
	require.NoError(t, err)
	not := compiled.(*pexpr.Not)
	ineq := not.Operand.(*pexpr.Inequality)
	assert.False(t, ineq.IsLT, "a <= b must negate a > b")

	gte := &logical.Binary{Op: logical.OpGtEq, Left: col("c"), Right: col("d")}
	compiled, err = CompileExpr(gte, numericSchema())
	require.NoError(t, err)
	not = compiled.(*pexpr.Not)
	ineq = not.Operand.(*pexpr.Inequality)
	assert.True(t, ineq.IsLT, "a >= b must negate a < b")
}

func TestCompileExpr_ComparisonScaleAligns(t *testing.T) {
	expr := &logical.Binary{Op: logical.OpEq, Left: col("a"), Right: col("b")}

	compiled, err := CompileExpr(expr, numericSchema())
	require.NoError(t, err)

	eq := compiled.(*pexpr.Equals)
	cast, ok := eq.Lhs.(*pexpr.ScalingCast)
	require.True(t, ok)
	assert.Equal(t, coltype.MustDecimal(10, 5), cast.To)
}

func TestCompileExpr_OverflowingScaleAlignmentIsAnalyzeError(t *testing.T) {
	schema := []catalog.Field{
		{Name: "wide", Type: coltype.MustDecimal(75, 0)},
		{Name: "frac", Type: coltype.MustDecimal(10, 5)},
	}
	expr := &logical.Binary{Op: logical.OpEq, Left: col("wide"), Right: col("frac")}

	_, err := CompileExpr(expr, schema)
	require.Error(t, err)

	code, ok := CodeOf(err)
	require.True(t, ok, "alignment failure must carry a taxonomy code: %v", err)
	assert.Equal(t, CodeAnalyze, code)
}

func TestCompileExpr_ColumnNotFound(t *testing.T) {
	_, err := CompileExpr(col("missing"), numericSchema())
	require.Error(t, err)

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeColumnNotFound, code)
}

func TestCompileExpr_DivisionRejected(t *testing.T) {
	expr := &logical.Binary{Op: logical.OpDivide, Left: col("c"), Right: col("d")}

	_, err := CompileExpr(expr, numericSchema())
	require.Error(t, err)

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnsupportedBinaryOperator, code)
}

func TestCompileExpr_CastBindsUntypedPlaceholder(t *testing.T) {
	expr := &logical.Cast{
		Expr: &logical.Placeholder{ID: "$2"},
		To:   logical.DataType{Kind: logical.DataInt64},
	}

	compiled, err := CompileExpr(expr, numericSchema())
	require.NoError(t, err)

	ph, ok := compiled.(*pexpr.Placeholder)
	require.True(t, ok, "expected Placeholder, got %T", compiled)
	assert.Equal(t, 2, ph.Index)
	assert.Equal(t, coltype.BigInt(), ph.Type)
}

func TestCompileExpr_UntypedPlaceholderRejected(t *testing.T) {
	_, err := CompileExpr(&logical.Placeholder{ID: "$1"}, numericSchema())
	require.Error(t, err)

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidPlaceholder, code)
}

func TestCompileExpr_CastFallsBackToScalingCast(t *testing.T) {
	expr := &logical.Cast{
		Expr: col("c"),
		To:   logical.DataType{Kind: logical.DataDecimal, Precision: 21, Scale: 2},
	}

	compiled, err := CompileExpr(expr, numericSchema())
	require.NoError(t, err)

	cast, ok := compiled.(*pexpr.ScalingCast)
	require.True(t, ok, "expected ScalingCast fallback, got %T", compiled)
	assert.Equal(t, coltype.MustDecimal(21, 2), cast.To)
}

func TestCompileExpr_LossyCastSurfacesScaleCastError(t *testing.T) {
	expr := &logical.Cast{
		Expr: col("b"),
		To:   logical.DataType{Kind: logical.DataDecimal, Precision: 10, Scale: 2},
	}

	_, err := CompileExpr(expr, numericSchema())
	require.Error(t, err)

	code, ok := typearith.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, typearith.CodeScaleCasting, code)
}

func TestCompileExpr_FloatLiteralRejected(t *testing.T) {
	expr := &logical.Literal{Value: logical.Float64Value(1.5)}

	_, err := CompileExpr(expr, numericSchema())
	require.Error(t, err)

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnsupportedDataType, code)
}

func TestCompileExpr_ScalarLiteral(t *testing.T) {
	lit := &logical.Literal{Value: logical.ScalarValue{Value: big.NewInt(42)}}

	compiled, err := CompileExpr(lit, numericSchema())
	require.NoError(t, err)
	assert.Equal(t, coltype.Scalar(), compiled.ResultType())
	assert.Equal(t, pexpr.NewLiteral(pexpr.ScalarValue{Value: big.NewInt(42)}), compiled)
}

func TestCompileExpr_NotRevalidatesOperand(t *testing.T) {
	_, err := CompileExpr(&logical.Not{Expr: col("c")}, numericSchema())
	require.Error(t, err)

	code, ok := typearith.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, typearith.CodeInvalidColumnType, code)
}

func TestCompileExpr_NegateRequiresNumeric(t *testing.T) {
	compiled, err := CompileExpr(&logical.Negate{Expr: col("c")}, numericSchema())
	require.NoError(t, err)
	assert.Equal(t, coltype.BigInt(), compiled.ResultType())

	_, err = CompileExpr(&logical.Negate{Expr: col("s")}, numericSchema())
	require.Error(t, err)
}

func TestCompileExpr_WildcardRejected(t *testing.T) {
	_, err := CompileExpr(&logical.Wildcard{}, numericSchema())
	require.Error(t, err)

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnsupportedLogicalExpression, code)
}

func TestColumnNames_OrderAndDeduplication(t *testing.T) {
	expr := &logical.Binary{
		Op:   logical.OpAnd,
		Left: &logical.Binary{Op: logical.OpGt, Left: col("b"), Right: col("a")},
		Right: &logical.Not{
			Expr: &logical.Binary{Op: logical.OpEq, Left: col("a"), Right: &logical.Literal{Value: logical.Int64Value(1)}},
		},
	}
	assert.Equal(t, []string{"b", "a"}, ColumnNames(expr))
}

func TestColumnNames_DescendsAggregateArguments(t *testing.T) {
	expr := &logical.AggregateCall{Func: logical.AggSum, Arg: col("b")}
	assert.Equal(t, []string{"b"}, ColumnNames(expr))
}

func TestColumnNames_PlaceholdersContributeNothing(t *testing.T) {
	expr := &logical.Binary{Op: logical.OpEq, Left: col("a"), Right: &logical.Placeholder{ID: "$1"}}
	assert.Equal(t, []string{"a"}, ColumnNames(expr))
}
