package model

import (
	"testing"

	"github.com/awcullen/opcua/ua"
	"github.com/stretchr/testify/assert"
)

func TestBudgetDepth(t *testing.T) {
	b := Budget{MaxDepth: 3}
	assert.False(t, b.Unbounded())
	assert.True(t, b.DepthAllows(0))
	assert.True(t, b.DepthAllows(3))
	assert.False(t, b.DepthAllows(4))
}

func TestBudgetUnbounded(t *testing.T) {
	b := Budget{MaxNodes: 500, MaxQueue: 200}
	assert.True(t, b.Unbounded())
	assert.True(t, b.DepthAllows(1000))
}

func TestNodeClassNameRoundTrip(t *testing.T) {
	classes := []ua.NodeClass{
		ua.NodeClassObject,
		ua.NodeClassVariable,
		ua.NodeClassMethod,
		ua.NodeClassObjectType,
		ua.NodeClassVariableType,
		ua.NodeClassReferenceType,
		ua.NodeClassDataType,
		ua.NodeClassView,
	}
	for _, nc := range classes {
		assert.Equal(t, nc, ParseNodeClass(NodeClassName(nc)))
	}
}

func TestParseNodeClassIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, ua.NodeClassMethod, ParseNodeClass("METHOD"))
	assert.Equal(t, ua.NodeClassVariable, ParseNodeClass("variable"))
	assert.Equal(t, ua.NodeClassUnspecified, ParseNodeClass("nonsense"))
	assert.Equal(t, ua.NodeClassUnspecified, ParseNodeClass(""))
}

func TestTreeCount(t *testing.T) {
	leaf := &TreeNode{}
	mid := &TreeNode{Children: []*TreeNode{leaf}}
	root := &TreeNode{Children: []*TreeNode{mid, {}}}
	assert.Equal(t, 4, root.Count())

	var nilTree *TreeNode
	assert.Zero(t, nilTree.Count())
}
