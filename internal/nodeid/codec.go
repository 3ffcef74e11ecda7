// Package nodeid parses and formats the textual OPC UA node id syntax
// used on the command line and in all displayed output.
package nodeid

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/awcullen/opcua/ua"
	"github.com/google/uuid"
)

// SyntaxError reports a malformed textual node id. It is always a local
// input error, never a server-side condition.
type SyntaxError struct {
	Text   string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid node id %q: %s", e.Text, e.Reason)
}

// wellKnown maps convenience aliases to the standard folder nodes.
// These are aliases for user input only, not part of the wire syntax.
var wellKnown = map[string]ua.NodeID{
	"root":    ua.ObjectIDRootFolder,
	"objects": ua.ObjectIDObjectsFolder,
	"server":  ua.ObjectIDServer,
	"types":   ua.ObjectIDTypesFolder,
	"views":   ua.ObjectIDViewsFolder,
}

// Parse converts the textual representation into a NodeID. It accepts
// "ns=<u16>;i=<u32>", "ns=<u16>;s=<string>", "ns=<u16>;g=<uuid>",
// "ns=<u16>;b=<base64>", the namespace-0 shorthands "i=", "s=", a bare
// decimal integer, and the well-known folder aliases (objects, server,
// types, views, root). Tags are matched case-insensitively.
func Parse(text string) (ua.NodeID, error) {
	if text == "" {
		return nil, &SyntaxError{Text: text, Reason: "empty"}
	}
	if id, ok := wellKnown[strings.ToLower(text)]; ok {
		return id, nil
	}

	s := text
	var ns uint64
	if len(s) >= 3 && strings.EqualFold(s[:3], "ns=") {
		pos := strings.Index(s, ";")
		if pos < 0 {
			return nil, &SyntaxError{Text: text, Reason: "missing ';' after namespace"}
		}
		var err error
		ns, err = strconv.ParseUint(s[3:pos], 10, 16)
		if err != nil {
			return nil, &SyntaxError{Text: text, Reason: "malformed namespace index"}
		}
		s = s[pos+1:]
	}

	if len(s) < 2 || s[1] != '=' {
		// A bare decimal integer is shorthand for a numeric id in namespace 0.
		if id, err := strconv.ParseUint(s, 10, 32); err == nil {
			return ua.NewNodeIDNumeric(uint16(ns), uint32(id)), nil
		}
		return nil, &SyntaxError{Text: text, Reason: "missing identifier type tag"}
	}

	payload := s[2:]
	switch s[0] {
	case 'i', 'I':
		id, err := strconv.ParseUint(payload, 10, 32)
		if err != nil {
			return nil, &SyntaxError{Text: text, Reason: "malformed numeric identifier"}
		}
		return ua.NewNodeIDNumeric(uint16(ns), uint32(id)), nil
	case 's', 'S':
		return ua.NewNodeIDString(uint16(ns), payload), nil
	case 'g', 'G':
		id, err := uuid.Parse(payload)
		if err != nil {
			return nil, &SyntaxError{Text: text, Reason: "malformed GUID identifier"}
		}
		return ua.NewNodeIDGUID(uint16(ns), id), nil
	case 'b', 'B':
		id, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, &SyntaxError{Text: text, Reason: "identifier is not valid base64"}
		}
		return ua.NewNodeIDOpaque(uint16(ns), ua.ByteString(id)), nil
	}
	return nil, &SyntaxError{Text: text, Reason: fmt.Sprintf("unknown identifier type tag %q", s[:1])}
}

// Format returns the canonical textual representation. The "ns=0;" prefix
// is omitted, matching the representation servers display. Format and
// Parse round-trip exactly for all four identifier kinds.
func Format(id ua.NodeID) string {
	switch n := id.(type) {
	case ua.NodeIDNumeric:
		return n.String()
	case ua.NodeIDString:
		return n.String()
	case ua.NodeIDGUID:
		return n.String()
	case ua.NodeIDOpaque:
		return n.String()
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", id)
}

// kindRank orders the identifier kinds so that Compare is a total order
// even across kinds within the same namespace.
func kindRank(id ua.NodeID) int {
	switch id.(type) {
	case ua.NodeIDNumeric:
		return 0
	case ua.NodeIDString:
		return 1
	case ua.NodeIDGUID:
		return 2
	case ua.NodeIDOpaque:
		return 3
	}
	return 4
}

// Namespace returns the namespace index of any of the four identifier kinds.
func Namespace(id ua.NodeID) uint16 {
	switch n := id.(type) {
	case ua.NodeIDNumeric:
		return n.NamespaceIndex
	case ua.NodeIDString:
		return n.NamespaceIndex
	case ua.NodeIDGUID:
		return n.NamespaceIndex
	case ua.NodeIDOpaque:
		return n.NamespaceIndex
	}
	return 0
}

// Compare defines a total order over node ids: by namespace index first,
// then by identifier kind, then by the formatted identifier. Listings are
// sorted with it so output is stable across runs.
func Compare(a, b ua.NodeID) int {
	if na, nb := Namespace(a), Namespace(b); na != nb {
		if na < nb {
			return -1
		}
		return 1
	}
	if ra, rb := kindRank(a), kindRank(b); ra != rb {
		return ra - rb
	}
	return strings.Compare(Format(a), Format(b))
}
