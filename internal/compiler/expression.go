package compiler

import (
	"github.com/provesql/provesql/internal/catalog"
	"github.com/provesql/provesql/internal/coltype"
	"github.com/provesql/provesql/internal/logical"
	"github.com/provesql/provesql/internal/pexpr"
	"github.com/provesql/provesql/internal/typearith"
)

// CompileExpr translates one analyzer expression into a provable
// expression against the schema visible at this point of the plan.
// Compilation is pure and bottom-up; the first illegal node aborts the
// whole expression with a typed error.
func CompileExpr(expr logical.Expr, schema []catalog.Field) (pexpr.Expr, error) {
	switch node := expr.(type) {
	case *logical.Column:
		return resolveColumn(node.Name, schema)

	case *logical.Literal:
		value, err := mapLiteral(node.Value)
		if err != nil {
			return nil, err
		}
		return pexpr.NewLiteral(value), nil

	case *logical.Alias:
		// Aliases are transparent here. The plan compiler attaches
		// output names at projection boundaries.
		return CompileExpr(node.Expr, schema)

	case *logical.Cast:
		return compileCast(node, schema)

	case *logical.Not:
		operand, err := CompileExpr(node.Expr, schema)
		if err != nil {
			return nil, err
		}
		return pexpr.NewNot(operand)

	case *logical.Negate:
		operand, err := CompileExpr(node.Expr, schema)
		if err != nil {
			return nil, err
		}
		return pexpr.NewNegate(operand)

	case *logical.Binary:
		return compileBinary(node, schema)

	case *logical.Placeholder:
		return translatePlaceholder(node)

	default:
		return nil, compileErr(CodeUnsupportedLogicalExpression, expr.String(),
			"expression shape %T is outside the provable subset", expr)
	}
}

func resolveColumn(name string, schema []catalog.Field) (*pexpr.Column, error) {
	want := catalog.NormalizeIdent(name)
	for _, field := range schema {
		if catalog.NormalizeIdent(field.Name) == want {
			return pexpr.NewColumn(field.Name, field.Type), nil
		}
	}
	return nil, compileErr(CodeColumnNotFound, name,
		"column is not in the active schema")
}

// compileCast handles the two cast paths: binding an untyped placeholder
// to the cast's destination type, and the cast / scale-cast fallback for
// everything else. The scale cast's supported set is the superset, so its
// failure is the one surfaced when both are illegal.
func compileCast(node *logical.Cast, schema []catalog.Field) (pexpr.Expr, error) {
	to, err := mapDataType(node.To)
	if err != nil {
		return nil, err
	}

	if ph, ok := node.Expr.(*logical.Placeholder); ok && ph.Type == nil {
		return translateTypedPlaceholder(ph.ID, to)
	}

	operand, err := CompileExpr(node.Expr, schema)
	if err != nil {
		return nil, err
	}
	if cast, err := pexpr.NewCast(operand, to); err == nil {
		return cast, nil
	}
	return pexpr.NewScalingCast(operand, to)
}

func compileBinary(node *logical.Binary, schema []catalog.Field) (pexpr.Expr, error) {
	lhs, err := CompileExpr(node.Left, schema)
	if err != nil {
		return nil, err
	}
	rhs, err := CompileExpr(node.Right, schema)
	if err != nil {
		return nil, err
	}

	switch node.Op {
	case logical.OpAnd:
		return pexpr.NewAnd(lhs, rhs)
	case logical.OpOr:
		return pexpr.NewOr(lhs, rhs)

	case logical.OpMultiply:
		// Multiplication never scale-aligns: the scale difference folds
		// into its scale-addition rule.
		return pexpr.NewMultiply(lhs, rhs)

	case logical.OpAdd, logical.OpSubtract:
		aligned, lhs, rhs, err := alignScales(lhs, rhs)
		if err != nil {
			return nil, err
		}
		if node.Op == logical.OpAdd {
			if aligned {
				return pexpr.NewAddCapped(lhs, rhs)
			}
			return pexpr.NewAdd(lhs, rhs)
		}
		if aligned {
			return pexpr.NewSubtractCapped(lhs, rhs)
		}
		return pexpr.NewSubtract(lhs, rhs)

	case logical.OpEq, logical.OpNotEq:
		if err := typearith.CheckEqualsAnyScale(lhs.ResultType(), rhs.ResultType()); err != nil {
			return nil, err
		}
		_, lhs, rhs, err := alignScales(lhs, rhs)
		if err != nil {
			return nil, err
		}
		eq, err := pexpr.NewEquals(lhs, rhs)
		if err != nil {
			return nil, err
		}
		if node.Op == logical.OpNotEq {
			return pexpr.NewNot(eq)
		}
		return eq, nil

	case logical.OpLt, logical.OpGt, logical.OpLtEq, logical.OpGtEq:
		if err := typearith.CheckInequalityAnyScale(lhs.ResultType(), rhs.ResultType()); err != nil {
			return nil, err
		}
		_, lhs, rhs, err := alignScales(lhs, rhs)
		if err != nil {
			return nil, err
		}
		// Strict forms map directly; the non-strict forms desugar to the
		// negated opposite strict comparison.
		switch node.Op {
		case logical.OpLt:
			return pexpr.NewInequality(lhs, rhs, true)
		case logical.OpGt:
			return pexpr.NewInequality(lhs, rhs, false)
		case logical.OpLtEq:
			gt, err := pexpr.NewInequality(lhs, rhs, false)
			if err != nil {
				return nil, err
			}
			return pexpr.NewNot(gt)
		default:
			lt, err := pexpr.NewInequality(lhs, rhs, true)
			if err != nil {
				return nil, err
			}
			return pexpr.NewNot(lt)
		}

	default:
		return nil, compileErr(CodeUnsupportedBinaryOperator, node.String(),
			"operator %s is outside the provable subset", node.Op)
	}
}

// alignScales inserts a scaling cast around the lower-scale operand when
// two numeric operands carry different scales, so equality, ordering, and
// addition see matching scales. The cast widens to a decimal that keeps
// every integral digit of the source and adopts the higher scale. Returns
// whether a cast was inserted.
func alignScales(lhs, rhs pexpr.Expr) (bool, pexpr.Expr, pexpr.Expr, error) {
	lt, rt := lhs.ResultType(), rhs.ResultType()
	_, ls, lok := lt.PrecisionScale()
	_, rs, rok := rt.PrecisionScale()
	if !lok || !rok || ls == rs {
		return false, lhs, rhs, nil
	}
	if ls < rs {
		cast, err := scaleUp(lhs, rs)
		if err != nil {
			return false, nil, nil, err
		}
		return true, cast, rhs, nil
	}
	cast, err := scaleUp(rhs, ls)
	if err != nil {
		return false, nil, nil, err
	}
	return true, lhs, cast, nil
}

func scaleUp(operand pexpr.Expr, scale int) (pexpr.Expr, error) {
	precision, fromScale, _ := operand.ResultType().PrecisionScale()
	to, err := coltype.NewDecimal(precision+(scale-fromScale), scale)
	if err != nil {
		return nil, &Error{
			Code:     CodeAnalyze,
			Message:  "scale alignment needs a cast target outside the provable range",
			Fragment: operand.ResultType().String(),
			Err:      err,
		}
	}
	return pexpr.NewScalingCast(operand, to)
}

// ColumnNames collects every column name an expression transitively
// references, in first-occurrence order with duplicates collapsed. The
// traversal descends binary expressions, Not, Alias, Cast, and aggregate
// arguments only; other node kinds contribute nothing.
func ColumnNames(expr logical.Expr) []string {
	var names []string
	seen := make(map[string]bool)
	collectColumns(expr, seen, &names)
	return names
}

func collectColumns(expr logical.Expr, seen map[string]bool, names *[]string) {
	switch node := expr.(type) {
	case *logical.Column:
		if !seen[node.Name] {
			seen[node.Name] = true
			*names = append(*names, node.Name)
		}
	case *logical.Binary:
		collectColumns(node.Left, seen, names)
		collectColumns(node.Right, seen, names)
	case *logical.Not:
		collectColumns(node.Expr, seen, names)
	case *logical.Alias:
		collectColumns(node.Expr, seen, names)
	case *logical.Cast:
		collectColumns(node.Expr, seen, names)
	case *logical.AggregateCall:
		collectColumns(node.Arg, seen, names)
	}
}
