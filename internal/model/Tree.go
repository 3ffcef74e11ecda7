package model

// TreeNode is one node of the tree-building browse variant. Each node
// owns its reference and its ordered children; there are no back
// pointers, so the tree is acyclic by construction.
type TreeNode struct {
	Ref      ChildReference
	Children []*TreeNode
}

// Count returns the number of nodes in the subtree, the root included.
func (t *TreeNode) Count() int {
	if t == nil {
		return 0
	}
	n := 1
	for _, c := range t.Children {
		n += c.Count()
	}
	return n
}
