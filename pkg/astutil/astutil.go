// Package astutil holds small, nil-safe helpers over tree-sitter nodes of
// the JavaScript and TypeScript grammars.
package astutil

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Key identifies a node within one tree.
type Key struct {
	ID         uintptr
	Start, End uint
}

// KeyOf returns the identity key of n. The zero Key is returned for nil.
func KeyOf(n *ts.Node) Key {
	if n == nil {
		return Key{}
	}
	return Key{ID: n.Id(), Start: n.StartByte(), End: n.EndByte()}
}

// Same reports whether a and b are the same node.
func Same(a, b *ts.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return KeyOf(a) == KeyOf(b) && a.Kind() == b.Kind()
}

// Kind returns the node kind or "" for nil.
func Kind(n *ts.Node) string {
	if n == nil {
		return ""
	}
	return n.Kind()
}

// Text returns the exact source text of n.
func Text(n *ts.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(source)
}

// Field returns the child stored under the given field name.
func Field(n *ts.Node, name string) *ts.Node {
	if n == nil {
		return nil
	}
	return n.ChildByFieldName(name)
}

// IsField reports whether child is parent's child under field name.
func IsField(parent *ts.Node, name string, child *ts.Node) bool {
	return Same(Field(parent, name), child)
}

// NamedChildren returns the named children of n.
func NamedChildren(n *ts.Node) []*ts.Node {
	if n == nil {
		return nil
	}
	count := n.NamedChildCount()
	out := make([]*ts.Node, 0, count)
	for i := uint(0); i < count; i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildOfKind returns the first direct child of the given kind.
func FirstChildOfKind(n *ts.Node, kind string) *ts.Node {
	if n == nil {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}

// HasToken reports whether n has an anonymous child token such as
// "static", "get" or "async".
func HasToken(n *ts.Node, token string) bool {
	if n == nil {
		return false
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c != nil && !c.IsNamed() && c.Kind() == token {
			return true
		}
	}
	return false
}

// Unparen strips any parenthesized_expression wrappers.
func Unparen(n *ts.Node) *ts.Node {
	for n != nil && n.Kind() == "parenthesized_expression" {
		inner := NamedChildren(n)
		if len(inner) == 0 {
			return n
		}
		n = inner[0]
	}
	return n
}

// Position returns the 1-based line and column of n.
func Position(n *ts.Node) (line, column int) {
	if n == nil {
		return 0, 0
	}
	p := n.StartPosition()
	return int(p.Row) + 1, int(p.Column) + 1
}

// IsFunction reports whether n introduces a function scope.
func IsFunction(n *ts.Node) bool {
	switch Kind(n) {
	case "function_declaration", "function_expression", "function",
		"arrow_function", "generator_function_declaration", "generator_function",
		"method_definition":
		return true
	}
	return false
}

// IsJSX reports whether n is a JSX element node.
func IsJSX(n *ts.Node) bool {
	switch Kind(n) {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return true
	}
	return false
}

// ContainsJSX recursively checks n and its descendants for JSX elements.
func ContainsJSX(n *ts.Node) bool {
	if n == nil {
		return false
	}
	if IsJSX(n) {
		return true
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if ContainsJSX(n.Child(i)) {
			return true
		}
	}
	return false
}

// CalleeText returns the callee source of a call_expression, e.g.
// "React.createElement". Returns "" for other nodes.
func CalleeText(n *ts.Node, source []byte) string {
	if Kind(n) != "call_expression" {
		return ""
	}
	return Text(Field(n, "function"), source)
}

// LastSegment returns the text after the final dot of a dotted path.
func LastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// ContainsCall reports whether n or a descendant calls a function whose
// callee text is one of names.
func ContainsCall(n *ts.Node, source []byte, names ...string) bool {
	if n == nil {
		return false
	}
	if n.Kind() == "call_expression" {
		callee := CalleeText(n, source)
		for _, name := range names {
			if callee == name {
				return true
			}
		}
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if ContainsCall(n.Child(i), source, names...) {
			return true
		}
	}
	return false
}

// StringValue returns the contents of a string literal without quotes.
func StringValue(n *ts.Node, source []byte) string {
	if n == nil {
		return ""
	}
	if frag := FirstChildOfKind(n, "string_fragment"); frag != nil {
		return frag.Utf8Text(source)
	}
	text := n.Utf8Text(source)
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}

// PropertyKey returns the static name of an object or pattern key.
// ok is false for computed keys.
func PropertyKey(n *ts.Node, source []byte) (name string, ok bool) {
	switch Kind(n) {
	case "property_identifier", "identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "private_property_identifier", "number":
		return Text(n, source), true
	case "string":
		return StringValue(n, source), true
	}
	return "", false
}
