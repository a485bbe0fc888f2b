package astutil

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// Params returns the binding patterns of a function's parameters in order.
//
// TypeScript parameter wrappers (required_parameter, optional_parameter)
// are unwrapped to their pattern; default values (assignment_pattern) are
// kept so callers can decide whether to look at the left side.
func Params(fn *ts.Node) []*ts.Node {
	if fn == nil {
		return nil
	}
	if single := Field(fn, "parameter"); single != nil {
		return []*ts.Node{single}
	}
	var out []*ts.Node
	for _, p := range NamedChildren(Field(fn, "parameters")) {
		switch p.Kind() {
		case "required_parameter", "optional_parameter":
			if pat := Field(p, "pattern"); pat != nil {
				out = append(out, pat)
			}
		case "comment":
		default:
			out = append(out, p)
		}
	}
	return out
}

// Param returns the i-th parameter pattern or nil.
func Param(fn *ts.Node, i int) *ts.Node {
	params := Params(fn)
	if i < 0 || i >= len(params) {
		return nil
	}
	return params[i]
}

// ParamHasType reports whether the i-th parameter carries a TypeScript
// type annotation.
func ParamHasType(fn *ts.Node, i int) bool {
	idx := 0
	for _, p := range NamedChildren(Field(fn, "parameters")) {
		switch p.Kind() {
		case "required_parameter", "optional_parameter":
			if idx == i {
				return Field(p, "type") != nil
			}
			idx++
		case "comment":
		default:
			idx++
		}
	}
	return false
}

// BindingTarget strips a default value from a parameter or pattern,
// returning the pattern being bound.
func BindingTarget(n *ts.Node) *ts.Node {
	for Kind(n) == "assignment_pattern" || Kind(n) == "object_assignment_pattern" {
		n = Field(n, "left")
	}
	return n
}

// FunctionName returns the declared name of a function or method, or the
// name of the variable or assignment target it is bound to.
func FunctionName(fn *ts.Node, source []byte) string {
	if name := Field(fn, "name"); name != nil {
		return Text(name, source)
	}
	return BoundName(fn, source)
}

// BoundName returns the identifier an expression is assigned to:
// `const X = <expr>`, `X = <expr>` or `obj.X = <expr>`.
func BoundName(expr *ts.Node, source []byte) string {
	parent := expr.Parent()
	switch Kind(parent) {
	case "variable_declarator":
		if IsField(parent, "value", expr) {
			if name := Field(parent, "name"); Kind(name) == "identifier" {
				return Text(name, source)
			}
		}
	case "assignment_expression":
		if IsField(parent, "right", expr) {
			left := Field(parent, "left")
			switch Kind(left) {
			case "identifier":
				return Text(left, source)
			case "member_expression":
				return Text(Field(left, "property"), source)
			}
		}
	}
	return ""
}

// ReturnedExpressions returns the expressions a function can return from
// its own body: the expression body of an arrow function, or the argument
// of every return statement not nested in an inner function.
func ReturnedExpressions(fn *ts.Node) []*ts.Node {
	body := Field(fn, "body")
	if body == nil {
		return nil
	}
	if body.Kind() != "statement_block" {
		return []*ts.Node{Unparen(body)}
	}
	var out []*ts.Node
	var visit func(n *ts.Node)
	visit = func(n *ts.Node) {
		for _, c := range NamedChildren(n) {
			if IsFunction(c) || c.Kind() == "class_declaration" || c.Kind() == "class" {
				continue
			}
			if c.Kind() == "return_statement" {
				if args := NamedChildren(c); len(args) > 0 {
					out = append(out, Unparen(args[0]))
				}
				continue
			}
			visit(c)
		}
	}
	visit(body)
	return out
}

// EnclosingFunction returns the nearest function ancestor of n, excluding
// n itself.
func EnclosingFunction(n *ts.Node) *ts.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if IsFunction(p) {
			return p
		}
	}
	return nil
}
