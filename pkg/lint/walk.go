package lint

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// Walk traverses root in pre-order over named nodes, firing the enter
// callbacks of every listener set before a node's children and the exit
// callbacks after them. Listener sets fire in the order given; within a
// set "*" fires before the kind callback on enter and after it on exit.
func Walk(root *ts.Node, listeners ...Listeners) {
	if root == nil {
		return
	}
	var visit func(n *ts.Node)
	visit = func(n *ts.Node) {
		kind := n.Kind()
		for _, l := range listeners {
			if f := l["*"]; f != nil {
				f(n)
			}
			if f := l[kind]; f != nil {
				f(n)
			}
		}
		count := n.NamedChildCount()
		for i := uint(0); i < count; i++ {
			if c := n.NamedChild(i); c != nil {
				visit(c)
			}
		}
		exit := kind + ":exit"
		for _, l := range listeners {
			if f := l[exit]; f != nil {
				f(n)
			}
			if f := l["*:exit"]; f != nil {
				f(n)
			}
		}
	}
	visit(root)
}
