package model

// Budget bounds the work of one traversal. A zero field means
// "unlimited" for that dimension; depth counts from zero at the root.
type Budget struct {
	// MaxDepth stops expansion below this depth. Nodes first reached
	// beyond it are still reported, as leaves.
	MaxDepth int
	// MaxNodes caps how many nodes are browsed in total.
	MaxNodes int
	// MaxQueue caps the frontier size; discoveries beyond it are
	// reported but not enqueued for expansion.
	MaxQueue int
}

// Unbounded reports whether the budget places no depth limit.
func (b Budget) Unbounded() bool { return b.MaxDepth <= 0 }

// DepthAllows reports whether a node at the given depth may be browsed.
// Nodes first reached beyond MaxDepth stay leaves.
func (b Budget) DepthAllows(depth int) bool {
	return b.Unbounded() || depth <= b.MaxDepth
}
