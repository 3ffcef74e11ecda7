package format

import (
	"strings"
	"testing"
	"time"

	"github.com/awcullen/opcua/ua"
	"github.com/stretchr/testify/assert"
)

func TestVariantScalars(t *testing.T) {
	tests := []struct {
		name string
		in   ua.Variant
		want string
	}{
		{"nil", nil, "null"},
		{"bool", true, "true"},
		{"int32", int32(-7), "-7"},
		{"uint64", uint64(12), "12"},
		{"float", 2.5, "2.5"},
		{"string is quoted", "hello", `"hello"`},
		{"bytestring", ua.ByteString("abcd"), "ByteString(4 bytes)"},
		{"node id", ua.NewNodeIDNumeric(2, 42), "ns=2;i=42"},
		{"qualified name", ua.NewQualifiedName(2, "Pump"), "2:Pump"},
		{"localized text", ua.NewLocalizedText("Pump", "en"), `"Pump"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Variant(tt.in))
		})
	}
}

func TestVariantTime(t *testing.T) {
	ts := time.Date(2023, 9, 14, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2023-09-14 10:30:00", Variant(ts))
}

func TestVariantSlices(t *testing.T) {
	assert.Equal(t, "[1, 2, 3]", Variant([]int32{1, 2, 3}))
	assert.Equal(t, `["a", "b"]`, Variant([]string{"a", "b"}))
	assert.Equal(t, "[5 items]", Variant([]int32{1, 2, 3, 4, 5}))
}

func TestStatusCodeQuality(t *testing.T) {
	assert.Contains(t, StatusCode(ua.Good), "Good")
	assert.Contains(t, StatusCode(ua.BadNodeIDUnknown), "Bad")
}

func TestNodeClassNames(t *testing.T) {
	assert.Contains(t, NodeClass(ua.NodeClassObject), "Object")
	assert.Contains(t, NodeClass(ua.NodeClassVariable), "Variable")
	assert.Contains(t, NodeClass(ua.NodeClassMethod), "Method")
	assert.Contains(t, NodeClass(ua.NodeClassUnspecified), "Unspecified")
}

func TestServerStateNames(t *testing.T) {
	assert.Contains(t, ServerState(ua.ServerStateRunning), "Running")
	assert.Contains(t, ServerState(ua.ServerStateShutdown), "Shutdown")
}

func TestAccessLevel(t *testing.T) {
	assert.Equal(t, "None", AccessLevel(0))
	assert.Equal(t, "Read", AccessLevel(0x01))
	assert.Equal(t, "Read | Write", AccessLevel(0x03))
	assert.Equal(t, "Read | HistoryRead", AccessLevel(0x05))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	long := strings.Repeat("x", 40)
	got := Truncate(long, 10)
	assert.Len(t, got, 10)
	assert.True(t, strings.HasSuffix(got, "..."))
}
