package formula

// The optimizer is a single bottom-up rewrite pass with two kinds of
// rule. Folding replaces a subtree whose leaves are all constants with
// the constant it evaluates to. Composition merges a function node with
// a unary-function child into one node computing the composition, so an
// optimized tree applies one composed function where the original
// applied several. Running the pass again on an optimized tree changes
// no evaluated result.

// optimizeNode rewrites the tree rooted at n and returns the new root.
// Children are rewritten before their parent, so folding and
// composition are maximal for one pass.
func optimizeNode(n *node) *node {
	switch n.kind {
	case nodeBinary:
		n.left = optimizeNode(n.left)
		n.right = optimizeNode(n.right)
		if foldable(n) {
			return &node{kind: nodeConst, val: foldValue(n)}
		}
		// f(a, g(b)) collapses into one binary node over a and b. The
		// left-side rule below applies independently; when both fire,
		// f(h(a), g(b)) ends up as a single node over the grandchildren.
		if n.right.kind == nodeUnary {
			g := n.right
			n = &node{kind: nodeBinary, binary: n.binary.composeRight(g.unary), left: n.left, right: g.left}
		}
		if n.left.kind == nodeUnary {
			h := n.left
			n = &node{kind: nodeBinary, binary: n.binary.composeLeft(h.unary), left: h.left, right: n.right}
		}
		return n
	case nodeUnary:
		n.left = optimizeNode(n.left)
		if foldable(n.left) {
			return &node{kind: nodeConst, val: foldValue(n)}
		}
		switch n.left.kind {
		case nodeUnary:
			g := n.left
			return &node{kind: nodeUnary, unary: n.unary.compose(g.unary), left: g.left}
		case nodeBinary:
			g := n.left
			return &node{kind: nodeBinary, binary: n.unary.wrap(g.binary), left: g.left, right: g.right}
		}
		return n
	default:
		return n
	}
}

// foldable reports whether the subtree at n evaluates to a constant,
// i.e. contains no parameter (and no placeholder) anywhere.
func foldable(n *node) bool {
	switch n.kind {
	case nodeConst:
		return true
	case nodeUnary:
		return foldable(n.left)
	case nodeBinary:
		return foldable(n.left) && foldable(n.right)
	default:
		return false
	}
}

// foldValue evaluates a foldable subtree. The caller must have checked
// foldable(n); no lookup can be needed.
func foldValue(n *node) float64 {
	switch n.kind {
	case nodeConst:
		return n.val
	case nodeUnary:
		return n.unary.F(foldValue(n.left))
	case nodeBinary:
		return n.binary.F(foldValue(n.left), foldValue(n.right))
	default:
		panic("formula: foldValue on non-foldable node " + n.kind.String())
	}
}
