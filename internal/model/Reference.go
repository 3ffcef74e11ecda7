package model

import (
	"strings"

	"github.com/awcullen/opcua/ua"
)

// ChildReference is one forward hierarchical reference returned by a
// browse: the child's id plus the descriptive fields the server sends
// along with it. Values are never mutated after creation.
type ChildReference struct {
	ID             ua.NodeID
	BrowseName     ua.QualifiedName
	DisplayName    string
	NodeClass      ua.NodeClass
	TypeDefinition ua.NodeID
}

// NodeClassName returns the display name of a node class.
func NodeClassName(nc ua.NodeClass) string {
	switch nc {
	case ua.NodeClassObject:
		return "Object"
	case ua.NodeClassVariable:
		return "Variable"
	case ua.NodeClassMethod:
		return "Method"
	case ua.NodeClassObjectType:
		return "ObjectType"
	case ua.NodeClassVariableType:
		return "VariableType"
	case ua.NodeClassReferenceType:
		return "ReferenceType"
	case ua.NodeClassDataType:
		return "DataType"
	case ua.NodeClassView:
		return "View"
	}
	return "Unspecified"
}

// ParseNodeClass maps a class name (case-insensitive) back to the enum,
// for the --class search filter. Returns NodeClassUnspecified when the
// name is unknown.
func ParseNodeClass(name string) ua.NodeClass {
	switch {
	case strings.EqualFold(name, "object"):
		return ua.NodeClassObject
	case strings.EqualFold(name, "variable"):
		return ua.NodeClassVariable
	case strings.EqualFold(name, "method"):
		return ua.NodeClassMethod
	case strings.EqualFold(name, "objecttype"):
		return ua.NodeClassObjectType
	case strings.EqualFold(name, "variabletype"):
		return ua.NodeClassVariableType
	case strings.EqualFold(name, "referencetype"):
		return ua.NodeClassReferenceType
	case strings.EqualFold(name, "datatype"):
		return ua.NodeClassDataType
	case strings.EqualFold(name, "view"):
		return ua.NodeClassView
	}
	return ua.NodeClassUnspecified
}
