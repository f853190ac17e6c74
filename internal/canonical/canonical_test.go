package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_SortsKeys(t *testing.T) {
	got, err := Marshal(map[string]any{"b": 1, "a": 2})
	require.NoError(t, err)
	assert.Equal(t, `{"a":2,"b":1}`, string(got))
}

func TestMarshal_NoHTMLEscaping(t *testing.T) {
	got, err := Marshal(map[string]any{"op": "a < b && c > d"})
	require.NoError(t, err)
	assert.Equal(t, `{"op":"a < b && c > d"}`, string(got))
}

func TestMarshal_NormalizesStrings(t *testing.T) {
	composed, err := Marshal("café")
	require.NoError(t, err)
	decomposed, err := Marshal("café")
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestMarshal_RejectsFloats(t *testing.T) {
	_, err := Marshal(map[string]any{"x": 1.5})
	assert.Error(t, err)
}

func TestMarshal_Deterministic(t *testing.T) {
	v := map[string]any{"plan": "slice", "skip": 1, "input": map[string]any{"plan": "empty"}}
	first, err := Marshal(v)
	require.NoError(t, err)
	second, err := Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
