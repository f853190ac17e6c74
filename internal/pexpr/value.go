package pexpr

import (
	"encoding/hex"
	"encoding/json"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/provesql/provesql/internal/coltype"
)

// Value is a sealed interface over provable literal values. Every variant
// maps 1:1 to a column type; there is no null and no float.
type Value interface {
	valueNode() // Marker method - seals interface to this package
	ColumnType() coltype.Type
}

// BoolValue is a BOOLEAN literal.
type BoolValue bool

func (BoolValue) valueNode() {}

// ColumnType implements Value.
func (BoolValue) ColumnType() coltype.Type { return coltype.Boolean() }

// MarshalJSON implements json.Marshaler.
func (v BoolValue) MarshalJSON() ([]byte, error) { return tagValue("boolean", bool(v)) }

// Uint8Value is an unsigned 8-bit literal.
type Uint8Value uint8

func (Uint8Value) valueNode() {}

// ColumnType implements Value.
func (Uint8Value) ColumnType() coltype.Type { return coltype.Uint8() }

// MarshalJSON implements json.Marshaler.
func (v Uint8Value) MarshalJSON() ([]byte, error) { return tagValue("uint8", uint8(v)) }

// TinyIntValue is a signed 8-bit literal.
type TinyIntValue int8

func (TinyIntValue) valueNode() {}

// ColumnType implements Value.
func (TinyIntValue) ColumnType() coltype.Type { return coltype.TinyInt() }

// MarshalJSON implements json.Marshaler.
func (v TinyIntValue) MarshalJSON() ([]byte, error) { return tagValue("tinyint", int8(v)) }

// SmallIntValue is a signed 16-bit literal.
type SmallIntValue int16

func (SmallIntValue) valueNode() {}

// ColumnType implements Value.
func (SmallIntValue) ColumnType() coltype.Type { return coltype.SmallInt() }

// MarshalJSON implements json.Marshaler.
func (v SmallIntValue) MarshalJSON() ([]byte, error) { return tagValue("smallint", int16(v)) }

// IntValue is a signed 32-bit literal.
type IntValue int32

func (IntValue) valueNode() {}

// ColumnType implements Value.
func (IntValue) ColumnType() coltype.Type { return coltype.Int() }

// MarshalJSON implements json.Marshaler.
func (v IntValue) MarshalJSON() ([]byte, error) { return tagValue("int", int32(v)) }

// BigIntValue is a signed 64-bit literal.
type BigIntValue int64

func (BigIntValue) valueNode() {}

// ColumnType implements Value.
func (BigIntValue) ColumnType() coltype.Type { return coltype.BigInt() }

// MarshalJSON implements json.Marshaler.
func (v BigIntValue) MarshalJSON() ([]byte, error) { return tagValue("bigint", int64(v)) }

// Int128Value is a signed 128-bit literal. The value is serialized as a
// decimal string to stay exact.
type Int128Value struct {
	Value *big.Int
}

func (Int128Value) valueNode() {}

// ColumnType implements Value.
func (Int128Value) ColumnType() coltype.Type { return coltype.Int128() }

// MarshalJSON implements json.Marshaler.
func (v Int128Value) MarshalJSON() ([]byte, error) { return tagValue("int128", v.Value.String()) }

// DecimalValue is a fixed-point decimal literal. Precision and scale are
// explicit: they define the literal's column type independently of how
// many digits the value happens to use.
type DecimalValue struct {
	Value     decimal.Decimal
	Precision int
	Scale     int
}

func (DecimalValue) valueNode() {}

// ColumnType implements Value.
func (v DecimalValue) ColumnType() coltype.Type {
	return coltype.MustDecimal(v.Precision, v.Scale)
}

// MarshalJSON implements json.Marshaler.
func (v DecimalValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":      "decimal",
		"value":     v.Value.String(),
		"precision": v.Precision,
		"scale":     v.Scale,
	})
}

// ScalarValue is a field-element literal, serialized as a decimal string.
type ScalarValue struct {
	Value *big.Int
}

func (ScalarValue) valueNode() {}

// ColumnType implements Value.
func (ScalarValue) ColumnType() coltype.Type { return coltype.Scalar() }

// MarshalJSON implements json.Marshaler.
func (v ScalarValue) MarshalJSON() ([]byte, error) { return tagValue("scalar", v.Value.String()) }

// VarCharValue is a string literal.
type VarCharValue string

func (VarCharValue) valueNode() {}

// ColumnType implements Value.
func (VarCharValue) ColumnType() coltype.Type { return coltype.VarChar() }

// MarshalJSON implements json.Marshaler.
func (v VarCharValue) MarshalJSON() ([]byte, error) { return tagValue("varchar", string(v)) }

// VarBinaryValue is a byte-string literal, serialized as lowercase hex.
type VarBinaryValue []byte

func (VarBinaryValue) valueNode() {}

// ColumnType implements Value.
func (VarBinaryValue) ColumnType() coltype.Type { return coltype.VarBinary() }

// MarshalJSON implements json.Marshaler.
func (v VarBinaryValue) MarshalJSON() ([]byte, error) {
	return tagValue("varbinary", hex.EncodeToString(v))
}

// TimestampValue is a timestamp literal: an integer count of Unit since
// the epoch in Zone.
type TimestampValue struct {
	Unit  coltype.TimeUnit
	Zone  string
	Value int64
}

func (TimestampValue) valueNode() {}

// ColumnType implements Value.
func (v TimestampValue) ColumnType() coltype.Type {
	return coltype.TimestampTZ(v.Unit, v.Zone)
}

// MarshalJSON implements json.Marshaler.
func (v TimestampValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":  "timestamp",
		"unit":  v.Unit.String(),
		"zone":  v.Zone,
		"value": v.Value,
	})
}

func tagValue(typ string, value any) ([]byte, error) {
	return json.Marshal(map[string]any{"type": typ, "value": value})
}
