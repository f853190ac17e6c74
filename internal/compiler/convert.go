package compiler

import (
	"github.com/provesql/provesql/internal/coltype"
	"github.com/provesql/provesql/internal/logical"
	"github.com/provesql/provesql/internal/pexpr"
)

// mapDataType maps an analyzer data type onto a provable column type.
// Kinds without a counterpart (floats, dates) fail with
// UNSUPPORTED_DATA_TYPE.
func mapDataType(dt logical.DataType) (coltype.Type, error) {
	switch dt.Kind {
	case logical.DataBoolean:
		return coltype.Boolean(), nil
	case logical.DataUint8:
		return coltype.Uint8(), nil
	case logical.DataInt8:
		return coltype.TinyInt(), nil
	case logical.DataInt16:
		return coltype.SmallInt(), nil
	case logical.DataInt32:
		return coltype.Int(), nil
	case logical.DataInt64:
		return coltype.BigInt(), nil
	case logical.DataInt128:
		return coltype.Int128(), nil
	case logical.DataDecimal:
		typ, err := coltype.NewDecimal(dt.Precision, dt.Scale)
		if err != nil {
			return coltype.Type{}, &Error{
				Code:     CodeUnsupportedDataType,
				Message:  "decimal bounds are outside the provable range",
				Fragment: dt.String(),
				Err:      err,
			}
		}
		return typ, nil
	case logical.DataScalar:
		return coltype.Scalar(), nil
	case logical.DataUtf8:
		return coltype.VarChar(), nil
	case logical.DataBinary:
		return coltype.VarBinary(), nil
	case logical.DataTimestamp:
		return coltype.TimestampTZ(dt.Unit, dt.Zone), nil
	default:
		return coltype.Type{}, compileErr(CodeUnsupportedDataType, dt.String(),
			"data type has no provable column type")
	}
}

// mapLiteral maps an analyzer literal value onto a provable literal.
// Floats and NULL have no provable representation.
func mapLiteral(v logical.Value) (pexpr.Value, error) {
	switch value := v.(type) {
	case logical.BoolValue:
		return pexpr.BoolValue(value), nil
	case logical.Uint8Value:
		return pexpr.Uint8Value(value), nil
	case logical.Int8Value:
		return pexpr.TinyIntValue(value), nil
	case logical.Int16Value:
		return pexpr.SmallIntValue(value), nil
	case logical.Int32Value:
		return pexpr.IntValue(value), nil
	case logical.Int64Value:
		return pexpr.BigIntValue(value), nil
	case logical.Int128Value:
		return pexpr.Int128Value{Value: value.Value}, nil
	case logical.ScalarValue:
		return pexpr.ScalarValue{Value: value.Value}, nil
	case logical.DecimalValue:
		if _, err := coltype.NewDecimal(value.Precision, value.Scale); err != nil {
			return nil, &Error{
				Code:     CodeUnsupportedDataType,
				Message:  "decimal literal bounds are outside the provable range",
				Fragment: value.String(),
				Err:      err,
			}
		}
		return pexpr.DecimalValue{
			Value:     value.Value,
			Precision: value.Precision,
			Scale:     value.Scale,
		}, nil
	case logical.VarCharValue:
		return pexpr.VarCharValue(value), nil
	case logical.VarBinaryValue:
		return pexpr.VarBinaryValue(value), nil
	case logical.TimestampValue:
		return pexpr.TimestampValue{Unit: value.Unit, Zone: value.Zone, Value: value.Value}, nil
	default:
		return nil, compileErr(CodeUnsupportedDataType, v.String(),
			"literal value %T has no provable column type", v)
	}
}
