// Package typearith decides legality and exact result types for arithmetic
// and comparison over column types. All functions are pure: they inspect
// precision/scale metadata only and never touch values.
//
// Several operations come in two explicitly named policies:
//
//   - strict: precision overflow past 75 digits is an error. Used when two
//     operands of equal scale are combined directly.
//   - capped: precision is clamped to 75. Used after a scale-alignment cast
//     has already normalized the operands, where the widened precision is
//     an artifact of the cast rather than of the user's expression.
//
// The split is deliberate; call sites pick the policy by name so the choice
// stays visible in the compiler.
package typearith

import "github.com/provesql/provesql/internal/coltype"

type precisionPolicy int

const (
	strictPrecision precisionPolicy = iota
	cappedPrecision
)

// AddSubtract returns the result type of lhs + rhs (or lhs - rhs) under the
// strict precision policy.
func AddSubtract(lhs, rhs coltype.Type) (coltype.Type, error) {
	return addSubtract(lhs, rhs, strictPrecision)
}

// AddSubtractCapped returns the result type of lhs + rhs (or lhs - rhs)
// with the precision clamped to 75 instead of erroring.
func AddSubtractCapped(lhs, rhs coltype.Type) (coltype.Type, error) {
	return addSubtract(lhs, rhs, cappedPrecision)
}

func addSubtract(lhs, rhs coltype.Type, policy precisionPolicy) (coltype.Type, error) {
	if !lhs.IsNumeric() || !rhs.IsNumeric() {
		return coltype.Type{}, invalidOperands("addition/subtraction", lhs, rhs)
	}
	if lhs.IsInteger() && rhs.IsInteger() {
		return coltype.Wider(lhs, rhs), nil
	}
	if lhs.Kind == coltype.KindScalar || rhs.Kind == coltype.KindScalar {
		return coltype.Scalar(), nil
	}
	lp, ls, _ := lhs.PrecisionScale()
	rp, rs, _ := rhs.PrecisionScale()
	scale := maxInt(ls, rs)
	precision := scale + maxInt(lp-ls, rp-rs) + 1
	return decimalResult(precision, scale, policy)
}

// Multiply returns the result type of lhs * rhs under the strict precision
// policy.
func Multiply(lhs, rhs coltype.Type) (coltype.Type, error) {
	return multiply(lhs, rhs, strictPrecision)
}

// MultiplyCapped returns the result type of lhs * rhs with the precision
// clamped to 75 instead of erroring.
func MultiplyCapped(lhs, rhs coltype.Type) (coltype.Type, error) {
	return multiply(lhs, rhs, cappedPrecision)
}

func multiply(lhs, rhs coltype.Type, policy precisionPolicy) (coltype.Type, error) {
	if !lhs.IsNumeric() || !rhs.IsNumeric() {
		return coltype.Type{}, invalidOperands("multiplication", lhs, rhs)
	}
	if lhs.IsInteger() && rhs.IsInteger() {
		return coltype.Wider(lhs, rhs), nil
	}
	if lhs.Kind == coltype.KindScalar || rhs.Kind == coltype.KindScalar {
		return coltype.Scalar(), nil
	}
	lp, ls, _ := lhs.PrecisionScale()
	rp, rs, _ := rhs.PrecisionScale()
	scale := ls + rs
	if scale < coltype.MinScale || scale > coltype.MaxScale {
		return coltype.Type{}, errf(CodeInvalidScale,
			"multiplication of %s and %s needs scale %d", lhs, rhs, scale)
	}
	precision := lp + rp + 1
	return decimalResult(precision, scale, policy)
}

// Divide returns the result type of lhs / rhs. Division is defined for
// integers and decimals only; Scalar operands are rejected because the
// field has no meaningful quotient. Precision is always capped at 75 and
// the result keeps at least six fractional digits.
func Divide(lhs, rhs coltype.Type) (coltype.Type, error) {
	if !lhs.IsNumeric() || !rhs.IsNumeric() ||
		lhs.Kind == coltype.KindScalar || rhs.Kind == coltype.KindScalar {
		return coltype.Type{}, invalidOperands("division", lhs, rhs)
	}
	lp, ls, _ := lhs.PrecisionScale()
	rp, rs, _ := rhs.PrecisionScale()
	scale := maxInt(ls+rp+1, 6)
	if scale < coltype.MinScale || scale > coltype.MaxScale {
		return coltype.Type{}, errf(CodeInvalidScale,
			"division of %s and %s needs scale %d", lhs, rhs, scale)
	}
	precision := (lp - ls) + rs + scale
	return decimalResult(precision, scale, cappedPrecision)
}

func decimalResult(precision, scale int, policy precisionPolicy) (coltype.Type, error) {
	if precision > coltype.MaxPrecision {
		if policy == strictPrecision {
			return coltype.Type{}, errf(CodeInvalidPrecision,
				"result needs precision %d, max is %d", precision, coltype.MaxPrecision)
		}
		precision = coltype.MaxPrecision
	}
	return coltype.NewDecimal(precision, scale)
}

// CheckEquals decides whether lhs = rhs is provable without inserting any
// cast: numeric operands must share an identical scale, and non-numeric
// operands must be the same category. VarBinary is never comparable.
func CheckEquals(lhs, rhs coltype.Type) error {
	return checkComparison("equality", lhs, rhs, true)
}

// CheckEqualsAnyScale decides whether lhs = rhs is provable once a
// scale-alignment cast is inserted: any two numeric types pass. Use it
// immediately before wrapping an operand in a scaling cast.
func CheckEqualsAnyScale(lhs, rhs coltype.Type) error {
	return checkComparison("equality", lhs, rhs, false)
}

// CheckInequality decides whether lhs < rhs (or >) is provable without a
// cast. On top of the equality rules, decimals wider than 38 digits are
// rejected; they exceed the comparison circuit's bit width.
func CheckInequality(lhs, rhs coltype.Type) error {
	if err := checkComparison("inequality", lhs, rhs, true); err != nil {
		return err
	}
	return checkInequalityWidth(lhs, rhs)
}

// CheckInequalityAnyScale is CheckInequality under the scale-tolerant
// policy used immediately before a scale-alignment cast.
func CheckInequalityAnyScale(lhs, rhs coltype.Type) error {
	if err := checkComparison("inequality", lhs, rhs, false); err != nil {
		return err
	}
	return checkInequalityWidth(lhs, rhs)
}

func checkInequalityWidth(lhs, rhs coltype.Type) error {
	for _, t := range []coltype.Type{lhs, rhs} {
		if t.Kind == coltype.KindDecimal75 && t.Precision > coltype.MaxInequalityPrecision {
			return errf(CodeInvalidPrecision,
				"inequality over %s exceeds the %d-digit comparison limit",
				t, coltype.MaxInequalityPrecision)
		}
	}
	return nil
}

func checkComparison(op string, lhs, rhs coltype.Type, requireSameScale bool) error {
	if lhs.Kind == coltype.KindVarBinary || rhs.Kind == coltype.KindVarBinary {
		return invalidOperands(op, lhs, rhs)
	}
	if lhs.IsNumeric() && rhs.IsNumeric() {
		if requireSameScale {
			_, ls, _ := lhs.PrecisionScale()
			_, rs, _ := rhs.PrecisionScale()
			if ls != rs {
				return errf(CodeInvalidColumnType,
					"%s of %s and %s requires matching scales", op, lhs, rhs)
			}
		}
		return nil
	}
	switch {
	case lhs.Kind == coltype.KindBoolean && rhs.Kind == coltype.KindBoolean:
		return nil
	case lhs.Kind == coltype.KindVarChar && rhs.Kind == coltype.KindVarChar:
		return nil
	case lhs.Kind == coltype.KindTimestampTZ && rhs.Kind == coltype.KindTimestampTZ:
		return nil
	default:
		return invalidOperands(op, lhs, rhs)
	}
}

// CheckCast decides whether an explicit cast from one type to another is
// provable. The supported casts are identity, boolean to integer, integer
// widening, and timestamp to its underlying bigint representation.
func CheckCast(from, to coltype.Type) error {
	if from == to {
		return nil
	}
	switch {
	case from.Kind == coltype.KindBoolean && to.IsInteger():
		return nil
	case from.IsInteger() && to.IsInteger() && coltype.Wider(from, to) == to:
		return nil
	case from.Kind == coltype.KindTimestampTZ && to.Kind == coltype.KindBigInt:
		return nil
	default:
		return errf(CodeCasting, "cannot cast %s to %s", from, to)
	}
}

// CheckScaleCast decides whether a scale-preserving-or-widening cast from
// a numeric type to a decimal is lossless: the destination must keep at
// least as many fractional digits and at least as many integral digits as
// the source.
func CheckScaleCast(from, to coltype.Type) error {
	if to.Kind != coltype.KindDecimal75 {
		return errf(CodeScaleCasting, "scale cast target must be a decimal, got %s", to)
	}
	if !from.IsNumeric() || from.Kind == coltype.KindScalar {
		return errf(CodeScaleCasting, "cannot scale cast %s to %s", from, to)
	}
	fp, fs, _ := from.PrecisionScale()
	if to.Scale < fs || (to.Precision-to.Scale) < (fp-fs) {
		return errf(CodeScaleCasting, "scale cast from %s to %s loses digits", from, to)
	}
	return nil
}

// CheckAndOr requires both operands of AND/OR to be BOOLEAN.
func CheckAndOr(lhs, rhs coltype.Type) error {
	if !lhs.IsBoolean() || !rhs.IsBoolean() {
		return invalidOperands("AND/OR", lhs, rhs)
	}
	return nil
}

// CheckNot requires the operand of NOT to be BOOLEAN.
func CheckNot(t coltype.Type) error {
	if !t.IsBoolean() {
		return errf(CodeInvalidColumnType, "NOT is not defined for %s", t)
	}
	return nil
}

// CheckNegate requires the operand of unary minus to be numeric.
func CheckNegate(t coltype.Type) error {
	if !t.IsNumeric() {
		return errf(CodeInvalidColumnType, "negation is not defined for %s", t)
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
