// Package tree defines the two tree representations of a parsed document: a
// concrete parse tree that keeps every token, and an abstract syntax tree
// that keeps only keys, values and containers.
package tree

import (
	"iter"

	"github.com/mcncl/jsontree/internal/lexer"
)

// ContainerKind distinguishes objects from arrays.
type ContainerKind int

const (
	Dict ContainerKind = iota
	List
)

func (k ContainerKind) String() string {
	if k == List {
		return "list"
	}
	return "dict"
}

// Node is a parse-tree node. Leaves carry one token each; interior nodes are
// labeled "dict" or "list".
type Node struct {
	Label    string
	Leaf     bool
	Children []*Node
}

// NewLeaf returns a leaf node with the given label.
func NewLeaf(label string) *Node { return &Node{Label: label, Leaf: true} }

// NewInterior returns an interior node with the given label.
func NewInterior(label string) *Node { return &Node{Label: label} }

// Add appends child to n and returns child.
func (n *Node) Add(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// Walk yields the nodes of n in pre-order.
func (n *Node) Walk() iter.Seq[Entry] {
	return func(yield func(Entry) bool) { n.walk(0, yield) }
}

func (n *Node) walk(depth int, yield func(Entry) bool) bool {
	if !yield(Entry{Depth: depth, Leaf: n.Leaf, Label: n.Label}) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(depth+1, yield) {
			return false
		}
	}
	return true
}

// A Value is a node of the abstract syntax tree: one of *Leaf, *Pair or
// *Container.
type Value interface {
	isValue()
}

// A Leaf is a scalar value: a string, number, boolean or null.
type Leaf struct {
	Kind lexer.Kind
	Text string
}

// A Pair is an object member folding a key and its value into one node.
type Pair struct {
	Key   string
	Value Value
}

// A Container is an object or an array. Name is the positional placeholder
// "[i]" for containers that are array elements, and empty otherwise.
type Container struct {
	Kind     ContainerKind
	Name     string
	Children []Value
}

func (*Leaf) isValue()      {}
func (*Pair) isValue()      {}
func (*Container) isValue() {}

// Label renders the pair as "key : value", where value is the scalar text or
// the container kind.
func (p *Pair) Label() string {
	switch v := p.Value.(type) {
	case *Leaf:
		return p.Key + " : " + v.Text
	case *Container:
		return p.Key + " : " + v.Kind.String()
	}
	return p.Key
}

// Label renders the container as its kind, prefixed by its name if it has
// one.
func (c *Container) Label() string {
	if c.Name == "" {
		return c.Kind.String()
	}
	return c.Name + " : " + c.Kind.String()
}

// Len reports the number of members or elements of c.
func (c *Container) Len() int { return len(c.Children) }

// Find returns the first member of c with the given key, or nil.
func (c *Container) Find(key string) *Pair {
	for _, v := range c.Children {
		if p, ok := v.(*Pair); ok && p.Key == key {
			return p
		}
	}
	return nil
}

// Walk yields the nodes of the syntax tree rooted at c in pre-order. A pair
// with a scalar value is a single leaf; a pair with a container value is an
// interior node whose children are the container's.
func (c *Container) Walk() iter.Seq[Entry] {
	return func(yield func(Entry) bool) { walkValue(c, 0, yield) }
}

func walkValue(v Value, depth int, yield func(Entry) bool) bool {
	switch t := v.(type) {
	case *Leaf:
		return yield(Entry{Depth: depth, Leaf: true, Label: t.Text})
	case *Pair:
		c, ok := t.Value.(*Container)
		if !ok {
			return yield(Entry{Depth: depth, Leaf: true, Label: t.Label()})
		}
		if !yield(Entry{Depth: depth, Label: t.Label()}) {
			return false
		}
		return walkChildren(c, depth+1, yield)
	case *Container:
		if !yield(Entry{Depth: depth, Label: t.Label()}) {
			return false
		}
		return walkChildren(t, depth+1, yield)
	}
	return true
}

func walkChildren(c *Container, depth int, yield func(Entry) bool) bool {
	for _, v := range c.Children {
		if !walkValue(v, depth, yield) {
			return false
		}
	}
	return true
}
