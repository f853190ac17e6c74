package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provesql/provesql/internal/coltype"
)

func TestParseType_Spellings(t *testing.T) {
	cases := []struct {
		in   string
		want coltype.Type
	}{
		{"boolean", coltype.Boolean()},
		{"bool", coltype.Boolean()},
		{"uint8", coltype.Uint8()},
		{"tinyint", coltype.TinyInt()},
		{"smallint", coltype.SmallInt()},
		{"int", coltype.Int()},
		{"INTEGER", coltype.Int()},
		{"bigint", coltype.BigInt()},
		{"int128", coltype.Int128()},
		{"scalar", coltype.Scalar()},
		{"varchar", coltype.VarChar()},
		{"text", coltype.VarChar()},
		{"varbinary", coltype.VarBinary()},
		{"blob", coltype.VarBinary()},
		{"decimal(10,2)", coltype.MustDecimal(10, 2)},
		{"decimal( 38 , -3 )", coltype.MustDecimal(38, -3)},
		{"  BigInt  ", coltype.BigInt()},
	}
	for _, tc := range cases {
		got, err := ParseType(tc.in)
		require.NoError(t, err, "parse %q", tc.in)
		assert.Equal(t, tc.want, got, "parse %q", tc.in)
	}
}

func TestParseType_TimestampKeepsZoneCase(t *testing.T) {
	got, err := ParseType("timestamp(millisecond, America/New_York)")
	require.NoError(t, err)
	assert.Equal(t, coltype.TimestampTZ(coltype.UnitMillisecond, "America/New_York"), got)

	got, err = ParseType("TIMESTAMP(SECOND, UTC)")
	require.NoError(t, err)
	assert.Equal(t, coltype.TimestampTZ(coltype.UnitSecond, "UTC"), got)
}

func TestParseType_RoundTripsWithString(t *testing.T) {
	for _, typ := range []coltype.Type{
		coltype.Boolean(),
		coltype.SmallInt(),
		coltype.MustDecimal(25, 5),
		coltype.TimestampTZ(coltype.UnitNanosecond, "UTC"),
	} {
		got, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
}

func TestParseType_Rejections(t *testing.T) {
	for _, in := range []string{"", "float", "decimal(80,0)", "decimal(10)", "timestamp(fortnight, UTC)"} {
		_, err := ParseType(in)
		assert.Error(t, err, "parse %q", in)
	}
}
