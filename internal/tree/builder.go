package tree

import (
	"fmt"

	"github.com/mcncl/jsontree/internal/lexer"
)

// A Builder grows a parse tree and a syntax tree in lock step. The caller
// decides leaf versus container before inserting anything, so nothing is
// ever removed once added.
//
// Calls other than Open require an open container.
type Builder struct {
	nodes []*Node      // open parse-tree containers, innermost last
	conts []*Container // open syntax-tree containers, innermost last

	root *Node
	ast  *Container

	key    string
	hasKey bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder { return new(Builder) }

// Open starts a container of the given kind at the opening token. The first
// container opened becomes the root of both trees.
func (b *Builder) Open(kind ContainerKind, open lexer.Token) {
	n := NewInterior(kind.String())
	n.Add(NewLeaf(open.Text))
	c := &Container{Kind: kind}

	if len(b.nodes) == 0 {
		b.root, b.ast = n, c
	} else {
		b.node().Add(n)
		b.attach(c)
	}
	b.nodes = append(b.nodes, n)
	b.conts = append(b.conts, c)
}

// Close ends the innermost container at the closing token.
func (b *Builder) Close(end lexer.Token) {
	b.node().Add(NewLeaf(end.Text))
	b.nodes = b.nodes[:len(b.nodes)-1]
	b.conts = b.conts[:len(b.conts)-1]
}

// Key records an object key. The next Value or Open becomes its value.
func (b *Builder) Key(tok lexer.Token) {
	b.node().Add(NewLeaf(tok.Lexeme()))
	b.key, b.hasKey = tok.Text, true
}

// Punct records a structural token in the parse tree only.
func (b *Builder) Punct(tok lexer.Token) {
	b.node().Add(NewLeaf(tok.Text))
}

// Value records a scalar token in both trees.
func (b *Builder) Value(tok lexer.Token) {
	b.node().Add(NewLeaf(tok.Lexeme()))
	b.attach(&Leaf{Kind: tok.Kind, Text: tok.Text})
}

// Depth reports the number of open containers.
func (b *Builder) Depth() int { return len(b.nodes) }

// ParseTree returns the root of the parse tree, or nil if nothing was opened.
func (b *Builder) ParseTree() *Node { return b.root }

// AST returns the root of the syntax tree, or nil if nothing was opened.
func (b *Builder) AST() *Container { return b.ast }

func (b *Builder) node() *Node { return b.nodes[len(b.nodes)-1] }

// attach adds v to the innermost syntax-tree container, folding it with a
// pending key or naming it by position.
func (b *Builder) attach(v Value) {
	parent := b.conts[len(b.conts)-1]
	if b.hasKey {
		v = &Pair{Key: b.key, Value: v}
		b.key, b.hasKey = "", false
	} else if c, ok := v.(*Container); ok && parent.Kind == List {
		c.Name = fmt.Sprintf("[%d]", len(parent.Children))
	}
	parent.Children = append(parent.Children, v)
}
