// Package pathtree models declared prop shapes as a trie of field names.
//
// A tree is rooted at a Branch. Branch children are kept in declaration
// order; the Wildcard key matches any concrete segment (arrayOf/objectOf).
// Leaf nodes are terminal: reading below them is not declared. Open nodes
// accept any deeper path (any, object, custom validators, unknown shapes).
package pathtree

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

const (
	// Wildcard matches any single segment.
	Wildcard = "*"
	// Computed is the segment recorded for a computed read such as
	// props[key]. It matches and covers any declared segment.
	Computed = "[]"
)

// Kind classifies a tree node.
type Kind int

const (
	Leaf Kind = iota
	Open
	Branch
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Open:
		return "open"
	case Branch:
		return "branch"
	default:
		return "unknown"
	}
}

// Path is a sequence of field segments, e.g. ["a", "*", "c"].
type Path []string

// String joins the segments with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Append returns a new path with seg added; p is never modified.
func (p Path) Append(seg string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// Node is one entry of the declaration tree.
type Node struct {
	Kind Kind
	// Source is the syntax node the entry was declared at.
	Source *ts.Node

	keys     []string
	children map[string]*Node
}

// NewBranch returns an empty branch.
func NewBranch(source *ts.Node) *Node {
	return &Node{Kind: Branch, Source: source, children: make(map[string]*Node)}
}

// NewLeaf returns a terminal entry.
func NewLeaf(source *ts.Node) *Node {
	return &Node{Kind: Leaf, Source: source}
}

// NewOpen returns an entry accepting any deeper path.
func NewOpen(source *ts.Node) *Node {
	return &Node{Kind: Open, Source: source}
}

// Keys returns the child keys in insertion order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	return n.keys
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.keys)
}

// Child returns the child stored under key, or nil.
func (n *Node) Child(key string) *Node {
	if n == nil || n.children == nil {
		return nil
	}
	return n.children[key]
}

// Set stores child under key, merging with an existing entry. Calling Set
// on a non-branch node turns it into a branch.
func (n *Node) Set(key string, child *Node) {
	if child == nil {
		return
	}
	if n.Kind != Branch {
		n.Kind = Branch
	}
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	if existing, ok := n.children[key]; ok {
		n.children[key] = Merge(existing, child)
		return
	}
	n.keys = append(n.keys, key)
	n.children[key] = child
}

// Clone returns a deep copy of n. Source nodes are shared.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Kind: n.Kind, Source: n.Source}
	if n.children != nil {
		out.children = make(map[string]*Node, len(n.children))
		out.keys = append([]string(nil), n.keys...)
		for k, c := range n.children {
			out.children[k] = c.Clone()
		}
	}
	return out
}

// Merge unions two trees. A path declared in either input is declared in
// the result: Open absorbs everything, Leaf ∪ Branch keeps the branch and
// branches merge child by child. The inputs are not modified.
func Merge(a, b *Node) *Node {
	switch {
	case a == nil:
		return b.Clone()
	case b == nil:
		return a.Clone()
	case a.Kind == Open:
		return a.Clone()
	case b.Kind == Open:
		return b.Clone()
	case a.Kind == Leaf && b.Kind == Leaf:
		return a.Clone()
	case a.Kind == Leaf:
		out := b.Clone()
		out.Source = a.Source
		return out
	}

	out := a.Clone()
	if b.Kind == Branch {
		for _, k := range b.keys {
			out.Set(k, b.children[k].Clone())
		}
	}
	return out
}
