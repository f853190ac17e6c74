// Package pexpr defines provable expressions: the expression subset the
// downstream proof system can generate and verify a proof against.
//
// Expressions are immutable tagged trees built bottom-up by the compiler
// and never mutated. Smart constructors validate operand types at
// construction via the typearith engine, so an invalid node cannot exist.
package pexpr

import (
	"fmt"

	"github.com/provesql/provesql/internal/coltype"
	"github.com/provesql/provesql/internal/typearith"
)

// Expr is a sealed interface over provable expression nodes.
type Expr interface {
	exprNode() // Marker method - seals interface to this package

	// ResultType returns the node's result type, fixed at construction.
	ResultType() coltype.Type
}

// Column references a column of the active schema by name, carrying the
// type resolved at compile time.
type Column struct {
	Name string
	Type coltype.Type
}

func (*Column) exprNode() {}

// NewColumn constructs a column reference.
func NewColumn(name string, typ coltype.Type) *Column {
	return &Column{Name: name, Type: typ}
}

// ResultType implements Expr.
func (c *Column) ResultType() coltype.Type { return c.Type }

// Literal is a constant value.
type Literal struct {
	Value Value
}

func (*Literal) exprNode() {}

// NewLiteral constructs a literal expression.
func NewLiteral(v Value) *Literal { return &Literal{Value: v} }

// ResultType implements Expr.
func (l *Literal) ResultType() coltype.Type { return l.Value.ColumnType() }

// Add is lhs + rhs.
type Add struct {
	Lhs, Rhs Expr
	typ      coltype.Type
}

func (*Add) exprNode() {}

// NewAdd constructs an addition under the strict precision policy; the
// operands must already share a scale that keeps the result within 75
// digits.
func NewAdd(lhs, rhs Expr) (*Add, error) {
	typ, err := typearith.AddSubtract(lhs.ResultType(), rhs.ResultType())
	if err != nil {
		return nil, err
	}
	return &Add{Lhs: lhs, Rhs: rhs, typ: typ}, nil
}

// NewAddCapped constructs an addition with the result precision clamped
// to 75. Use it when a scale-alignment cast has already widened the
// operands.
func NewAddCapped(lhs, rhs Expr) (*Add, error) {
	typ, err := typearith.AddSubtractCapped(lhs.ResultType(), rhs.ResultType())
	if err != nil {
		return nil, err
	}
	return &Add{Lhs: lhs, Rhs: rhs, typ: typ}, nil
}

// ResultType implements Expr.
func (a *Add) ResultType() coltype.Type { return a.typ }

// Subtract is lhs - rhs.
type Subtract struct {
	Lhs, Rhs Expr
	typ      coltype.Type
}

func (*Subtract) exprNode() {}

// NewSubtract constructs a subtraction under the strict precision policy.
func NewSubtract(lhs, rhs Expr) (*Subtract, error) {
	typ, err := typearith.AddSubtract(lhs.ResultType(), rhs.ResultType())
	if err != nil {
		return nil, err
	}
	return &Subtract{Lhs: lhs, Rhs: rhs, typ: typ}, nil
}

// NewSubtractCapped constructs a subtraction with the result precision
// clamped to 75, for use after a scale-alignment cast.
func NewSubtractCapped(lhs, rhs Expr) (*Subtract, error) {
	typ, err := typearith.AddSubtractCapped(lhs.ResultType(), rhs.ResultType())
	if err != nil {
		return nil, err
	}
	return &Subtract{Lhs: lhs, Rhs: rhs, typ: typ}, nil
}

// ResultType implements Expr.
func (s *Subtract) ResultType() coltype.Type { return s.typ }

// Multiply is lhs * rhs. Multiplication never scale-aligns: the scale
// difference folds into its own scale-addition rule.
type Multiply struct {
	Lhs, Rhs Expr
	typ      coltype.Type
}

func (*Multiply) exprNode() {}

// NewMultiply constructs a multiplication under the strict precision
// policy.
func NewMultiply(lhs, rhs Expr) (*Multiply, error) {
	typ, err := typearith.Multiply(lhs.ResultType(), rhs.ResultType())
	if err != nil {
		return nil, err
	}
	return &Multiply{Lhs: lhs, Rhs: rhs, typ: typ}, nil
}

// ResultType implements Expr.
func (m *Multiply) ResultType() coltype.Type { return m.typ }

// And is boolean conjunction.
type And struct {
	Lhs, Rhs Expr
}

func (*And) exprNode() {}

// NewAnd constructs a conjunction; both operands must be BOOLEAN.
func NewAnd(lhs, rhs Expr) (*And, error) {
	if err := typearith.CheckAndOr(lhs.ResultType(), rhs.ResultType()); err != nil {
		return nil, err
	}
	return &And{Lhs: lhs, Rhs: rhs}, nil
}

// ResultType implements Expr.
func (*And) ResultType() coltype.Type { return coltype.Boolean() }

// Or is boolean disjunction.
type Or struct {
	Lhs, Rhs Expr
}

func (*Or) exprNode() {}

// NewOr constructs a disjunction; both operands must be BOOLEAN.
func NewOr(lhs, rhs Expr) (*Or, error) {
	if err := typearith.CheckAndOr(lhs.ResultType(), rhs.ResultType()); err != nil {
		return nil, err
	}
	return &Or{Lhs: lhs, Rhs: rhs}, nil
}

// ResultType implements Expr.
func (*Or) ResultType() coltype.Type { return coltype.Boolean() }

// Not is boolean negation.
type Not struct {
	Operand Expr
}

func (*Not) exprNode() {}

// NewNot constructs a negation; the operand must be BOOLEAN. The check
// runs here regardless of what the caller already verified.
func NewNot(operand Expr) (*Not, error) {
	if err := typearith.CheckNot(operand.ResultType()); err != nil {
		return nil, err
	}
	return &Not{Operand: operand}, nil
}

// ResultType implements Expr.
func (*Not) ResultType() coltype.Type { return coltype.Boolean() }

// Negate is arithmetic negation. The result type is the operand's type:
// every provable numeric type is signed.
type Negate struct {
	Operand Expr
}

func (*Negate) exprNode() {}

// NewNegate constructs an arithmetic negation; the operand must be
// numeric.
func NewNegate(operand Expr) (*Negate, error) {
	if err := typearith.CheckNegate(operand.ResultType()); err != nil {
		return nil, err
	}
	return &Negate{Operand: operand}, nil
}

// ResultType implements Expr.
func (n *Negate) ResultType() coltype.Type { return n.Operand.ResultType() }

// Equals is lhs = rhs.
type Equals struct {
	Lhs, Rhs Expr
}

func (*Equals) exprNode() {}

// NewEquals constructs an equality; operand legality follows the
// same-scale policy, so scale alignment must already have happened.
func NewEquals(lhs, rhs Expr) (*Equals, error) {
	if err := typearith.CheckEquals(lhs.ResultType(), rhs.ResultType()); err != nil {
		return nil, err
	}
	return &Equals{Lhs: lhs, Rhs: rhs}, nil
}

// ResultType implements Expr.
func (*Equals) ResultType() coltype.Type { return coltype.Boolean() }

// Inequality is lhs < rhs when IsLT, otherwise lhs > rhs. The non-strict
// comparisons desugar to Not(Inequality) at compile time.
type Inequality struct {
	Lhs, Rhs Expr
	IsLT     bool
}

func (*Inequality) exprNode() {}

// NewInequality constructs a strict comparison under the same-scale
// policy.
func NewInequality(lhs, rhs Expr, isLT bool) (*Inequality, error) {
	if err := typearith.CheckInequality(lhs.ResultType(), rhs.ResultType()); err != nil {
		return nil, err
	}
	return &Inequality{Lhs: lhs, Rhs: rhs, IsLT: isLT}, nil
}

// ResultType implements Expr.
func (*Inequality) ResultType() coltype.Type { return coltype.Boolean() }

// Cast is an explicit type conversion.
type Cast struct {
	Operand Expr
	To      coltype.Type
}

func (*Cast) exprNode() {}

// NewCast constructs an explicit cast; legality per typearith.CheckCast.
func NewCast(operand Expr, to coltype.Type) (*Cast, error) {
	if err := typearith.CheckCast(operand.ResultType(), to); err != nil {
		return nil, err
	}
	return &Cast{Operand: operand, To: to}, nil
}

// ResultType implements Expr.
func (c *Cast) ResultType() coltype.Type { return c.To }

// ScalingCast widens a numeric operand to a decimal with more fractional
// digits without losing precision. The compiler inserts these to align
// operand scales.
type ScalingCast struct {
	Operand Expr
	To      coltype.Type
}

func (*ScalingCast) exprNode() {}

// NewScalingCast constructs a scale cast; legality per
// typearith.CheckScaleCast.
func NewScalingCast(operand Expr, to coltype.Type) (*ScalingCast, error) {
	if err := typearith.CheckScaleCast(operand.ResultType(), to); err != nil {
		return nil, err
	}
	return &ScalingCast{Operand: operand, To: to}, nil
}

// ResultType implements Expr.
func (c *ScalingCast) ResultType() coltype.Type { return c.To }

// Placeholder is a prepared-statement parameter with a 1-based index and
// a concrete type.
type Placeholder struct {
	Index int
	Type  coltype.Type
}

func (*Placeholder) exprNode() {}

// NewPlaceholder constructs a placeholder; the index is 1-based.
func NewPlaceholder(index int, typ coltype.Type) (*Placeholder, error) {
	if index < 1 {
		return nil, fmt.Errorf("pexpr: placeholder index must be >= 1, got %d", index)
	}
	return &Placeholder{Index: index, Type: typ}, nil
}

// ResultType implements Expr.
func (p *Placeholder) ResultType() coltype.Type { return p.Type }
