package format

import (
	"testing"

	"github.com/awcullen/opcua/ua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgumentsEmpty(t *testing.T) {
	args, err := ParseArguments("")
	require.NoError(t, err)
	assert.Nil(t, args)

	args, err = ParseArguments("   ")
	require.NoError(t, err)
	assert.Nil(t, args)
}

func TestParseArgumentsSimpleValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ua.Variant
	}{
		{
			name:  "single integer",
			input: "42",
			want:  []ua.Variant{int32(42)},
		},
		{
			name:  "mixed list",
			input: "true, 7, 2.5, hello",
			want:  []ua.Variant{true, int32(7), 2.5, "hello"},
		},
		{
			name:  "booleans are case-insensitive",
			input: "TRUE,False",
			want:  []ua.Variant{true, false},
		},
		{
			name:  "negative numbers",
			input: "-3, -1.5",
			want:  []ua.Variant{int32(-3), -1.5},
		},
		{
			name:  "integer too wide for int32 becomes float",
			input: "3000000000",
			want:  []ua.Variant{float64(3000000000)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArguments(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgumentsJSON(t *testing.T) {
	args, err := ParseArguments(`[1, 2.5, true, "text", null, 3000000000]`)
	require.NoError(t, err)
	assert.Equal(t, []ua.Variant{int32(1), 2.5, true, "text", nil, int64(3000000000)}, args)
}

func TestParseArgumentsJSONRejectsNesting(t *testing.T) {
	_, err := ParseArguments(`[[1, 2]]`)
	assert.Error(t, err)

	_, err = ParseArguments(`[{"a": 1}]`)
	assert.Error(t, err)
}

func TestParseArgumentsMalformedJSON(t *testing.T) {
	_, err := ParseArguments(`[1, 2,]`)
	assert.Error(t, err)
}
