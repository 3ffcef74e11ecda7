package nodeid

import (
	"sort"
	"testing"

	"github.com/awcullen/opcua/ua"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ua.NodeID
	}{
		{
			name:  "numeric namespace 0 shorthand",
			input: "i=85",
			want:  ua.NewNodeIDNumeric(0, 85),
		},
		{
			name:  "numeric with namespace",
			input: "ns=2;i=1234",
			want:  ua.NewNodeIDNumeric(2, 1234),
		},
		{
			name:  "bare decimal integer",
			input: "2253",
			want:  ua.NewNodeIDNumeric(0, 2253),
		},
		{
			name:  "string with namespace",
			input: "ns=3;s=Simulation.Counter",
			want:  ua.NewNodeIDString(3, "Simulation.Counter"),
		},
		{
			name:  "string identifier containing equals",
			input: "ns=1;s=a=b;c",
			want:  ua.NewNodeIDString(1, "a=b;c"),
		},
		{
			name:  "guid",
			input: "ns=2;g=5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c",
			want:  ua.NewNodeIDGUID(2, uuid.MustParse("5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c")),
		},
		{
			name:  "opaque",
			input: "ns=2;b=YWJjZA==",
			want:  ua.NewNodeIDOpaque(2, ua.ByteString("abcd")),
		},
		{
			name:  "case-insensitive tags",
			input: "NS=2;I=42",
			want:  ua.NewNodeIDNumeric(2, 42),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAliases(t *testing.T) {
	tests := []struct {
		input string
		want  ua.NodeID
	}{
		{"root", ua.ObjectIDRootFolder},
		{"objects", ua.ObjectIDObjectsFolder},
		{"Objects", ua.ObjectIDObjectsFolder},
		{"SERVER", ua.ObjectIDServer},
		{"types", ua.ObjectIDTypesFolder},
		{"views", ua.ObjectIDViewsFolder},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"namespace without separator", "ns=2"},
		{"namespace out of range", "ns=70000;i=1"},
		{"namespace not a number", "ns=two;i=1"},
		{"numeric id not a number", "i=abc"},
		{"numeric id out of range", "i=4294967296"},
		{"unknown tag", "x=1"},
		{"missing tag", "hello"},
		{"malformed guid", "g=not-a-guid"},
		{"invalid base64", "b=!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			var serr *SyntaxError
			assert.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.input, serr.Text)
			assert.NotEmpty(t, serr.Reason)
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	inputs := []string{
		"i=85",
		"ns=2;i=1234",
		"s=hello",
		"ns=3;s=Simulation.Counter",
		"ns=2;g=5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c",
		"ns=2;b=YWJjZA==",
	}
	for _, in := range inputs {
		id, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, in, Format(id), in)
	}
}

func TestFormatOmitsNamespaceZero(t *testing.T) {
	assert.Equal(t, "i=85", Format(ua.NewNodeIDNumeric(0, 85)))
	assert.Equal(t, "s=x", Format(ua.NewNodeIDString(0, "x")))
	assert.Equal(t, "", Format(nil))
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, uint16(0), Namespace(ua.NewNodeIDNumeric(0, 85)))
	assert.Equal(t, uint16(7), Namespace(ua.NewNodeIDString(7, "x")))
	assert.Equal(t, uint16(3), Namespace(ua.NewNodeIDOpaque(3, ua.ByteString("ab"))))
}

func TestCompareOrdersListings(t *testing.T) {
	ids := []ua.NodeID{
		ua.NewNodeIDString(2, "b"),
		ua.NewNodeIDNumeric(0, 100),
		ua.NewNodeIDString(2, "a"),
		ua.NewNodeIDNumeric(2, 1),
		ua.NewNodeIDNumeric(0, 99),
	}
	sort.Slice(ids, func(i, j int) bool { return Compare(ids[i], ids[j]) < 0 })

	want := []ua.NodeID{
		ua.NewNodeIDNumeric(0, 100), // "i=100" < "i=99" lexically
		ua.NewNodeIDNumeric(0, 99),
		ua.NewNodeIDNumeric(2, 1),
		ua.NewNodeIDString(2, "a"),
		ua.NewNodeIDString(2, "b"),
	}
	assert.Equal(t, want, ids)

	assert.Zero(t, Compare(ua.NewNodeIDNumeric(2, 1), ua.NewNodeIDNumeric(2, 1)))
	assert.Negative(t, Compare(ua.NewNodeIDNumeric(1, 9), ua.NewNodeIDNumeric(2, 1)))
	assert.Positive(t, Compare(ua.NewNodeIDString(0, "a"), ua.NewNodeIDNumeric(0, 9)))
}
