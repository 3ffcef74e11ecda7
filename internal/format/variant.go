// Package format turns OPC UA values into display strings and textual
// CLI arguments into typed variants.
package format

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/awcullen/opcua/ua"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/amine-amaach/uaWalker/internal/nodeid"
)

// Variant renders a value read from (or returned by) the server as a
// display string. Slices longer than three elements collapse to a count.
func Variant(v ua.Variant) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool, int8, uint8, int16, uint16, int32, uint32, int64, uint64:
		return fmt.Sprintf("%v", val)
	case float32, float64:
		return fmt.Sprintf("%v", val)
	case string:
		return fmt.Sprintf("%q", val)
	case time.Time:
		return val.UTC().Format("2006-01-02 15:04:05")
	case uuid.UUID:
		return val.String()
	case ua.ByteString:
		return fmt.Sprintf("ByteString(%d bytes)", len(val))
	case ua.XMLElement:
		return fmt.Sprintf("XmlElement(%s)", string(val))
	case ua.NodeIDNumeric, ua.NodeIDString, ua.NodeIDGUID, ua.NodeIDOpaque:
		return nodeid.Format(val.(ua.NodeID))
	case ua.ExpandedNodeID:
		return val.String()
	case ua.StatusCode:
		return fmt.Sprintf("StatusCode(0x%08X)", uint32(val))
	case ua.QualifiedName:
		return val.String()
	case ua.LocalizedText:
		return fmt.Sprintf("%q", val.Text)
	case ua.ServerStatusDataType:
		return fmt.Sprintf("%s (since %s)", ServerState(val.State), val.StartTime.UTC().Format("2006-01-02 15:04:05"))
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		if rv.Len() > 3 {
			return fmt.Sprintf("[%d items]", rv.Len())
		}
		items := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = Variant(rv.Index(i).Interface())
		}
		return "[" + strings.Join(items, ", ") + "]"
	}
	return fmt.Sprintf("%v", v)
}

// ServerState names a server state enum value.
func ServerState(s ua.ServerState) string {
	switch s {
	case ua.ServerStateRunning:
		return color.Green.Sprint("Running")
	case ua.ServerStateShutdown:
		return color.Red.Sprint("Shutdown")
	}
	return color.Gray.Sprint("Unknown")
}

// StatusCode renders a status code with its quality coloring.
func StatusCode(code ua.StatusCode) string {
	switch {
	case code.IsGood():
		return color.Green.Sprint("Good")
	case code.IsUncertain():
		return color.Yellow.Sprintf("Uncertain (0x%08X)", uint32(code))
	default:
		return color.Red.Sprintf("Bad (0x%08X)", uint32(code))
	}
}

// NodeClass renders a node class name with its conventional color.
func NodeClass(nc ua.NodeClass) string {
	switch nc {
	case ua.NodeClassObject:
		return color.Blue.Sprint("Object")
	case ua.NodeClassVariable:
		return color.Green.Sprint("Variable")
	case ua.NodeClassMethod:
		return color.Yellow.Sprint("Method")
	case ua.NodeClassObjectType:
		return color.Cyan.Sprint("ObjectType")
	case ua.NodeClassVariableType:
		return color.Magenta.Sprint("VariableType")
	case ua.NodeClassReferenceType:
		return color.White.Sprint("ReferenceType")
	case ua.NodeClassDataType:
		return color.LightBlue.Sprint("DataType")
	case ua.NodeClassView:
		return color.LightGreen.Sprint("View")
	}
	return color.Gray.Sprint("Unspecified")
}

// AccessLevel renders the access-level bit mask as flag names.
func AccessLevel(mask byte) string {
	var parts []string
	if mask&0x01 != 0 {
		parts = append(parts, "Read")
	}
	if mask&0x02 != 0 {
		parts = append(parts, "Write")
	}
	if mask&0x04 != 0 {
		parts = append(parts, "HistoryRead")
	}
	if mask&0x08 != 0 {
		parts = append(parts, "HistoryWrite")
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, " | ")
}

// Truncate shortens a string to the given display width, ellipsis
// included, counting wide runes correctly.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}
