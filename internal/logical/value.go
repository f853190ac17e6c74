package logical

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/provesql/provesql/internal/coltype"
)

// Value is a sealed interface over the literal value representations the
// upstream analyzer can deliver. The set is wider than what the provable
// subset accepts: Float64 and Null exist here so the compiler can reject
// them with a typed error instead of a panic.
type Value interface {
	valueNode() // Marker method - seals interface to this package
	String() string
}

// BoolValue is a BOOLEAN literal.
type BoolValue bool

func (BoolValue) valueNode() {}

func (v BoolValue) String() string { return fmt.Sprintf("%t", bool(v)) }

// Uint8Value is an unsigned 8-bit literal.
type Uint8Value uint8

func (Uint8Value) valueNode() {}

func (v Uint8Value) String() string { return fmt.Sprintf("%d", uint8(v)) }

// Int8Value is a signed 8-bit literal.
type Int8Value int8

func (Int8Value) valueNode() {}

func (v Int8Value) String() string { return fmt.Sprintf("%d", int8(v)) }

// Int16Value is a signed 16-bit literal.
type Int16Value int16

func (Int16Value) valueNode() {}

func (v Int16Value) String() string { return fmt.Sprintf("%d", int16(v)) }

// Int32Value is a signed 32-bit literal.
type Int32Value int32

func (Int32Value) valueNode() {}

func (v Int32Value) String() string { return fmt.Sprintf("%d", int32(v)) }

// Int64Value is a signed 64-bit literal.
type Int64Value int64

func (Int64Value) valueNode() {}

func (v Int64Value) String() string { return fmt.Sprintf("%d", int64(v)) }

// Int128Value is a signed 128-bit literal carried as a big integer.
type Int128Value struct {
	Value *big.Int
}

func (Int128Value) valueNode() {}

func (v Int128Value) String() string { return v.Value.String() }

// ScalarValue is an unbounded field-element literal carried as a big
// integer.
type ScalarValue struct {
	Value *big.Int
}

func (ScalarValue) valueNode() {}

func (v ScalarValue) String() string { return v.Value.String() }

// DecimalValue is a fixed-point decimal literal with explicit precision
// and scale metadata.
type DecimalValue struct {
	Value     decimal.Decimal
	Precision int
	Scale     int
}

func (DecimalValue) valueNode() {}

func (v DecimalValue) String() string { return v.Value.String() }

// VarCharValue is a string literal.
type VarCharValue string

func (VarCharValue) valueNode() {}

func (v VarCharValue) String() string { return fmt.Sprintf("%q", string(v)) }

// VarBinaryValue is a byte-string literal.
type VarBinaryValue []byte

func (VarBinaryValue) valueNode() {}

func (v VarBinaryValue) String() string { return "0x" + hex.EncodeToString(v) }

// TimestampValue is a timestamp literal: an integer count of Unit since
// the epoch, interpreted in Zone.
type TimestampValue struct {
	Unit  coltype.TimeUnit
	Zone  string
	Value int64
}

func (TimestampValue) valueNode() {}

func (v TimestampValue) String() string {
	return fmt.Sprintf("timestamp(%s,%s,%d)", v.Unit, v.Zone, v.Value)
}

// Float64Value is a floating-point literal. It has no provable column
// type; the compiler rejects it.
type Float64Value float64

func (Float64Value) valueNode() {}

func (v Float64Value) String() string { return fmt.Sprintf("%g", float64(v)) }

// NullValue is SQL NULL. Absence of a value is not representable in the
// provable subset; the compiler rejects it.
type NullValue struct{}

func (NullValue) valueNode() {}

func (NullValue) String() string { return "NULL" }
