package formula

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Exactly
// the fields selected by kind are meaningful; children are exclusively
// owned by their parent and the tree is acyclic.
type node struct {
	kind nodeKind

	val    float64    // nodeConst
	param  byte       // nodeParam
	unary  UnaryFunc  // nodeUnary, argument in left
	binary BinaryFunc // nodeBinary, operands in left and right

	left  *node
	right *node
}

type nodeKind int8

const (
	// nodePlaceholder is the internal sentinel. The parser never emits
	// it; evaluation reaching one is an invariant failure.
	nodePlaceholder nodeKind = iota
	nodeConst
	nodeParam
	nodeUnary
	nodeBinary
)

func (k nodeKind) String() string {
	switch k {
	case nodePlaceholder:
		return "Placeholder"
	case nodeConst:
		return "Const"
	case nodeParam:
		return "Param"
	case nodeUnary:
		return "Unary"
	case nodeBinary:
		return "Binary"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	switch n.kind {
	case nodePlaceholder:
		// Placeholders use an invalid character so they stand out.
		b.WriteByte('$')
	case nodeConst:
		b.WriteString(strconv.FormatFloat(n.val, 'g', -1, 64))
	case nodeParam:
		b.WriteByte(n.param)
	case nodeUnary:
		b.WriteString(n.unary.Name)
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeBinary:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.binary.Name)
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("formula: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
