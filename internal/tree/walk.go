package tree

import "iter"

// An Entry is one node as seen by a pre-order traversal.
type Entry struct {
	Depth int // 0 for the root
	Leaf  bool
	Label string
}

// A Walker is a tree that can be traversed in pre-order. Both *Node and
// *Container implement it, which is all a renderer needs.
type Walker interface {
	Walk() iter.Seq[Entry]
}

// Count reports the number of leaf and interior nodes of w.
func Count(w Walker) (leaves, interiors int) {
	for e := range w.Walk() {
		if e.Leaf {
			leaves++
		} else {
			interiors++
		}
	}
	return leaves, interiors
}

// Entries collects the traversal of w.
func Entries(w Walker) []Entry {
	var out []Entry
	for e := range w.Walk() {
		out = append(out, e)
	}
	return out
}
