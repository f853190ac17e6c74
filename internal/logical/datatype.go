package logical

import (
	"fmt"

	"github.com/provesql/provesql/internal/coltype"
)

// DataKind enumerates the analyzer's data types. The set is wider than
// the provable column types; kinds without a mapping compile to
// UNSUPPORTED_DATA_TYPE.
type DataKind int

const (
	DataBoolean DataKind = iota
	DataUint8
	DataInt8
	DataInt16
	DataInt32
	DataInt64
	DataInt128
	DataDecimal
	DataScalar
	DataUtf8
	DataBinary
	DataTimestamp
	DataFloat32
	DataFloat64
	DataDate32
)

// DataType is a type in the analyzer's type system. Precision/Scale apply
// to DataDecimal, Unit/Zone to DataTimestamp.
type DataType struct {
	Kind      DataKind
	Precision int
	Scale     int
	Unit      coltype.TimeUnit
	Zone      string
}

// String renders the analyzer's spelling of the type.
func (d DataType) String() string {
	switch d.Kind {
	case DataBoolean:
		return "Boolean"
	case DataUint8:
		return "UInt8"
	case DataInt8:
		return "Int8"
	case DataInt16:
		return "Int16"
	case DataInt32:
		return "Int32"
	case DataInt64:
		return "Int64"
	case DataInt128:
		return "Int128"
	case DataDecimal:
		return fmt.Sprintf("Decimal(%d,%d)", d.Precision, d.Scale)
	case DataScalar:
		return "Scalar"
	case DataUtf8:
		return "Utf8"
	case DataBinary:
		return "Binary"
	case DataTimestamp:
		return fmt.Sprintf("Timestamp(%s,%s)", d.Unit, d.Zone)
	case DataFloat32:
		return "Float32"
	case DataFloat64:
		return "Float64"
	case DataDate32:
		return "Date32"
	default:
		return "Unknown"
	}
}
