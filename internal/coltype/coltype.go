// Package coltype defines the closed set of column types the provable
// subset supports. Every downstream layer (the type-arithmetic engine,
// the expression compiler, the plan compiler) dispatches over this set;
// no other column types exist.
package coltype

import (
	"errors"
	"fmt"
)

// Kind enumerates the column type variants.
type Kind int

const (
	KindUnknown Kind = iota
	KindBoolean
	KindUint8
	KindTinyInt
	KindSmallInt
	KindInt
	KindBigInt
	KindInt128
	KindDecimal75
	KindScalar
	KindVarChar
	KindVarBinary
	KindTimestampTZ
)

// TimeUnit is the resolution of a TimestampTZ column.
type TimeUnit int

const (
	UnitSecond TimeUnit = iota
	UnitMillisecond
	UnitMicrosecond
	UnitNanosecond
)

// Precision and scale bounds for Decimal75 columns. Scale is stored as a
// signed 8-bit quantity by the proof system, hence the asymmetric range.
const (
	MaxPrecision = 75
	MinScale     = -128
	MaxScale     = 127
)

// MaxInequalityPrecision is the widest decimal the proof system can compare
// with < or >. Wider decimals exceed the 128-bit comparison circuit.
const MaxInequalityPrecision = 38

var (
	// ErrInvalidPrecision reports a decimal precision outside [1, 75].
	ErrInvalidPrecision = errors.New("coltype: decimal precision must be in [1, 75]")
	// ErrInvalidScale reports a decimal scale outside [-128, 127].
	ErrInvalidScale = errors.New("coltype: decimal scale must be in [-128, 127]")
)

// Type describes one column type. Precision and Scale are meaningful only
// for KindDecimal75; Unit and Zone only for KindTimestampTZ. Types are
// plain comparable values: two Types are the same type iff they are ==.
type Type struct {
	Kind      Kind
	Precision int
	Scale     int
	Unit      TimeUnit
	Zone      string
}

// Boolean returns the BOOLEAN type.
func Boolean() Type { return Type{Kind: KindBoolean} }

// Uint8 returns the unsigned 8-bit integer type.
func Uint8() Type { return Type{Kind: KindUint8} }

// TinyInt returns the signed 8-bit integer type.
func TinyInt() Type { return Type{Kind: KindTinyInt} }

// SmallInt returns the signed 16-bit integer type.
func SmallInt() Type { return Type{Kind: KindSmallInt} }

// Int returns the signed 32-bit integer type.
func Int() Type { return Type{Kind: KindInt} }

// BigInt returns the signed 64-bit integer type.
func BigInt() Type { return Type{Kind: KindBigInt} }

// Int128 returns the signed 128-bit integer type.
func Int128() Type { return Type{Kind: KindInt128} }

// Scalar returns the unbounded field-element type.
func Scalar() Type { return Type{Kind: KindScalar} }

// VarChar returns the variable-length string type.
func VarChar() Type { return Type{Kind: KindVarChar} }

// VarBinary returns the variable-length byte-string type.
func VarBinary() Type { return Type{Kind: KindVarBinary} }

// TimestampTZ returns a timestamp type with the given unit and zone.
func TimestampTZ(unit TimeUnit, zone string) Type {
	return Type{Kind: KindTimestampTZ, Unit: unit, Zone: zone}
}

// NewDecimal constructs a Decimal75 type, validating the precision and
// scale bounds. Every decimal type in the system goes through here, so a
// decimal type always carries a valid precision and scale by construction.
func NewDecimal(precision, scale int) (Type, error) {
	if precision < 1 || precision > MaxPrecision {
		return Type{}, fmt.Errorf("%w: got %d", ErrInvalidPrecision, precision)
	}
	if scale < MinScale || scale > MaxScale {
		return Type{}, fmt.Errorf("%w: got %d", ErrInvalidScale, scale)
	}
	return Type{Kind: KindDecimal75, Precision: precision, Scale: scale}, nil
}

// MustDecimal is NewDecimal for statically known precision/scale pairs.
// It panics on invalid input and is intended for tests and literals.
func MustDecimal(precision, scale int) Type {
	t, err := NewDecimal(precision, scale)
	if err != nil {
		panic(err)
	}
	return t
}

// IsInteger reports whether the type is one of the machine integer kinds.
func (t Type) IsInteger() bool {
	switch t.Kind {
	case KindUint8, KindTinyInt, KindSmallInt, KindInt, KindBigInt, KindInt128:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether the type participates in arithmetic:
// integers, decimals, and scalars.
func (t Type) IsNumeric() bool {
	return t.IsInteger() || t.Kind == KindDecimal75 || t.Kind == KindScalar
}

// IsBoolean reports whether the type is BOOLEAN.
func (t Type) IsBoolean() bool { return t.Kind == KindBoolean }

// integerRank orders the integer kinds by width. Uint8 sorts below TinyInt
// so that mixed-width results are deterministic.
var integerRank = map[Kind]int{
	KindUint8:    0,
	KindTinyInt:  1,
	KindSmallInt: 2,
	KindInt:      3,
	KindBigInt:   4,
	KindInt128:   5,
}

// Wider returns the wider of two integer types. Both arguments must be
// integer types.
func Wider(a, b Type) Type {
	if integerRank[a.Kind] >= integerRank[b.Kind] {
		return a
	}
	return b
}

// PrecisionScale normalizes a numeric type to decimal terms: integers map
// to their maximum digit count at scale 0, Scalar to the full 75 digits,
// and decimals report their declared precision and scale. The
// second return is false for non-numeric types.
func (t Type) PrecisionScale() (precision, scale int, ok bool) {
	switch t.Kind {
	case KindUint8, KindTinyInt:
		return 3, 0, true
	case KindSmallInt:
		return 5, 0, true
	case KindInt:
		return 10, 0, true
	case KindBigInt:
		return 19, 0, true
	case KindInt128:
		return 39, 0, true
	case KindScalar:
		return MaxPrecision, 0, true
	case KindDecimal75:
		return t.Precision, t.Scale, true
	default:
		return 0, 0, false
	}
}

// String renders the type the way schema files spell it.
func (t Type) String() string {
	switch t.Kind {
	case KindBoolean:
		return "boolean"
	case KindUint8:
		return "uint8"
	case KindTinyInt:
		return "tinyint"
	case KindSmallInt:
		return "smallint"
	case KindInt:
		return "int"
	case KindBigInt:
		return "bigint"
	case KindInt128:
		return "int128"
	case KindDecimal75:
		return fmt.Sprintf("decimal(%d,%d)", t.Precision, t.Scale)
	case KindScalar:
		return "scalar"
	case KindVarChar:
		return "varchar"
	case KindVarBinary:
		return "varbinary"
	case KindTimestampTZ:
		return fmt.Sprintf("timestamp(%s,%s)", t.Unit, t.Zone)
	default:
		return "unknown"
	}
}

// MarshalJSON renders the type as its schema-file spelling. Compiled
// plans serialize deterministically for golden comparison; a string form
// keeps the output readable and stable.
func (t Type) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// String renders the time unit.
func (u TimeUnit) String() string {
	switch u {
	case UnitSecond:
		return "second"
	case UnitMillisecond:
		return "millisecond"
	case UnitMicrosecond:
		return "microsecond"
	case UnitNanosecond:
		return "nanosecond"
	default:
		return "unknown"
	}
}
