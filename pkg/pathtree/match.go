package pathtree

// builtinMembers are read off primitive, array and function values
// without being props of their own.
var builtinMembers = map[string]bool{
	"length": true,
}

// Accepts reports whether a used path is declared by the tree rooted at n.
//
// Each segment must match a child key exactly or through a Wildcard child.
// Walking below a Leaf fails unless the path ends in a built-in member
// such as length; reaching an Open node or a Computed segment accepts the
// rest of the path.
func (n *Node) Accepts(path Path) bool {
	if n == nil {
		return false
	}
	cur := n
	for i, seg := range path {
		if seg == Computed {
			return true
		}
		switch cur.Kind {
		case Open:
			return true
		case Leaf:
			return i == len(path)-1 && builtinMembers[seg]
		}
		next := cur.Child(seg)
		if next == nil {
			next = cur.Child(Wildcard)
		}
		if next == nil {
			return false
		}
		cur = next
	}
	return true
}

// Covers reports whether a used path equals or extends a declared path.
// Wildcard declared segments and Computed used segments match anything;
// a Computed used segment also covers every deeper declared segment.
func Covers(declared, used Path) bool {
	for i, d := range declared {
		if i >= len(used) {
			return false
		}
		u := used[i]
		if u == Computed {
			return true
		}
		if d != u && d != Wildcard {
			return false
		}
	}
	return true
}

// Entry is a flattened declared path.
type Entry struct {
	Path Path
	Node *Node
}

// Entries flattens the tree in declaration order (pre-order). Paths whose
// last segment is a Wildcard are traversed but not emitted: an element
// placeholder is never itself a prop.
func (n *Node) Entries() []Entry {
	var out []Entry
	var walk func(node *Node, prefix Path)
	walk = func(node *Node, prefix Path) {
		for _, k := range node.keys {
			child := node.children[k]
			p := prefix.Append(k)
			if k != Wildcard {
				out = append(out, Entry{Path: p, Node: child})
			}
			if child.Kind == Branch {
				walk(child, p)
			}
		}
	}
	if n != nil {
		walk(n, nil)
	}
	return out
}
