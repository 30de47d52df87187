package gp

import (
	"strconv"
	"strings"

	"golang.org/x/exp/rand"
)

// Node is one node of a typed expression tree: either a literal whose value
// was fixed at construction, or a primitive applied to child subtrees. A
// node exclusively owns its children (strict tree, no sharing) and is
// immutable after construction.
type Node struct {
	prim     *Primitive
	children []*Node

	// Literal nodes carry a fixed value instead of a primitive.
	lit   *Literal
	value Value
}

// NewNode applies a primitive to child subtrees. Children are not checked
// against the primitive's input types here; type-correct construction is the
// caller's contract (Parse enforces it for trees read from text). A
// type-violating tree fails at evaluation time with a panic that the
// consuming agent converts to the neutral action.
func NewNode(prim *Primitive, children ...*Node) *Node {
	return &Node{prim: prim, children: children}
}

// NewLiteralNode samples the literal generator once; the node returns the
// sampled value on every evaluation thereafter. This is the only randomized
// step in the whole evaluation path, and it happens at construction time.
func NewLiteralNode(lit *Literal, rng *rand.Rand) *Node {
	return &Node{lit: lit, value: lit.sample(rng)}
}

// NewFloat builds a fixed float literal node.
func NewFloat(value float64) *Node {
	return &Node{lit: FloatLiteral, value: value}
}

// NewBool builds a fixed bool literal node.
func NewBool(value bool) *Node {
	return &Node{lit: BoolLiteral, value: value}
}

// Type is the node's declared output type.
func (n *Node) Type() Type {
	if n.lit != nil {
		return n.lit.Returns
	}
	return n.prim.Returns
}

// Children returns the node's child subtrees. Callers must not modify them.
func (n *Node) Children() []*Node {
	return n.children
}

// Evaluate computes the node's value against the context: the fixed value
// for a literal, a state read for a sensor, or the operator applied to the
// children (the conditional evaluates only the selected branch). Evaluation
// never mutates the context.
func (n *Node) Evaluate(ctx *Context) Value {
	if n.lit != nil {
		return n.value
	}
	return n.prim.run(n.children, ctx)
}

// Size is the number of nodes in the subtree.
func (n *Node) Size() int {
	size := 1
	for _, child := range n.children {
		size += child.Size()
	}
	return size
}

// String renders the tree as an s-expression readable by Parse.
func (n *Node) String() string {
	if n.lit != nil {
		switch value := n.value.(type) {
		case bool:
			return strconv.FormatBool(value)
		case float64:
			return strconv.FormatFloat(value, 'g', -1, 64)
		default:
			return "?"
		}
	}
	if len(n.children) == 0 {
		return "(" + n.prim.Name + ")"
	}
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(n.prim.Name)
	for _, child := range n.children {
		b.WriteByte(' ')
		b.WriteString(child.String())
	}
	b.WriteByte(')')
	return b.String()
}
