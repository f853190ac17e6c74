package coltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecimal_Bounds(t *testing.T) {
	d, err := NewDecimal(75, 127)
	require.NoError(t, err)
	assert.Equal(t, 75, d.Precision)
	assert.Equal(t, 127, d.Scale)

	d, err = NewDecimal(1, -128)
	require.NoError(t, err)
	assert.Equal(t, -128, d.Scale)

	_, err = NewDecimal(0, 0)
	assert.ErrorIs(t, err, ErrInvalidPrecision)

	_, err = NewDecimal(76, 0)
	assert.ErrorIs(t, err, ErrInvalidPrecision)

	_, err = NewDecimal(10, 128)
	assert.ErrorIs(t, err, ErrInvalidScale)

	_, err = NewDecimal(10, -129)
	assert.ErrorIs(t, err, ErrInvalidScale)
}

func TestPrecisionScale_Normalization(t *testing.T) {
	cases := []struct {
		typ       Type
		precision int
		scale     int
	}{
		{Uint8(), 3, 0},
		{TinyInt(), 3, 0},
		{SmallInt(), 5, 0},
		{Int(), 10, 0},
		{BigInt(), 19, 0},
		{Int128(), 39, 0},
		{Scalar(), 75, 0},
		{MustDecimal(25, 5), 25, 5},
	}
	for _, tc := range cases {
		p, s, ok := tc.typ.PrecisionScale()
		require.True(t, ok, tc.typ.String())
		assert.Equal(t, tc.precision, p, tc.typ.String())
		assert.Equal(t, tc.scale, s, tc.typ.String())
	}
}

func TestPrecisionScale_NonNumeric(t *testing.T) {
	for _, typ := range []Type{Boolean(), VarChar(), VarBinary(), TimestampTZ(UnitSecond, "UTC")} {
		_, _, ok := typ.PrecisionScale()
		assert.False(t, ok, typ.String())
	}
}

func TestIsNumeric(t *testing.T) {
	numeric := []Type{Uint8(), TinyInt(), SmallInt(), Int(), BigInt(), Int128(), Scalar(), MustDecimal(10, 2)}
	for _, typ := range numeric {
		assert.True(t, typ.IsNumeric(), typ.String())
	}
	other := []Type{Boolean(), VarChar(), VarBinary(), TimestampTZ(UnitMillisecond, "UTC")}
	for _, typ := range other {
		assert.False(t, typ.IsNumeric(), typ.String())
	}
}

func TestWider(t *testing.T) {
	assert.Equal(t, BigInt(), Wider(SmallInt(), BigInt()))
	assert.Equal(t, BigInt(), Wider(BigInt(), SmallInt()))
	assert.Equal(t, Int128(), Wider(Int128(), Int()))
	assert.Equal(t, TinyInt(), Wider(Uint8(), TinyInt()))
	// Same width keeps the left type.
	assert.Equal(t, Int(), Wider(Int(), Int()))
}

func TestTypeEquality(t *testing.T) {
	assert.Equal(t, MustDecimal(10, 2), MustDecimal(10, 2))
	assert.NotEqual(t, MustDecimal(10, 2), MustDecimal(10, 3))
	assert.NotEqual(t, TimestampTZ(UnitSecond, "UTC"), TimestampTZ(UnitMillisecond, "UTC"))
}
