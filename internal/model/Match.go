package model

import (
	"github.com/awcullen/opcua/ua"
)

// SearchMatch is one hit of a name search. Parent is the node whose
// browse produced the matching reference; since the engine only browses
// downward it is the immediate owner of the matched node.
type SearchMatch struct {
	ID          ua.NodeID
	BrowseName  ua.QualifiedName
	DisplayName string
	NodeClass   ua.NodeClass
	Parent      ua.NodeID
	Exact       bool
}
