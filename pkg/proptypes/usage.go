package proptypes

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/proplint/pkg/astutil"
	"github.com/gnana997/proplint/pkg/component"
	"github.com/gnana997/proplint/pkg/pathtree"
)

// Usages records the prop paths components read.
type Usages struct {
	scopes *ScopeStack
	source []byte
}

// NewUsages returns a usage extractor writing aliases into scopes.
func NewUsages(scopes *ScopeStack, source []byte) *Usages {
	return &Usages{scopes: scopes, source: source}
}

// RecordUsage follows the syntax around ref, an expression evaluating to
// the props of rec at prefix, and records every path read from it.
// Chained reads extend the path, declarations and destructuring create
// aliases, and the whole props object escaping disables validation.
func (u *Usages) RecordUsage(ref *ts.Node, rec *component.Record, prefix pathtree.Path) {
	if rec == nil || ref == nil {
		return
	}
	parent := ref.Parent()
	switch astutil.Kind(parent) {
	case "member_expression":
		if astutil.IsField(parent, "object", ref) {
			if len(prefix) > 0 && isCallee(parent) {
				rec.AddUsage(prefix, ref)
				return
			}
			name := astutil.Text(astutil.Field(parent, "property"), u.source)
			u.RecordUsage(parent, rec, prefix.Append(name))
			return
		}
	case "subscript_expression":
		if astutil.IsField(parent, "object", ref) {
			u.RecordUsage(parent, rec, prefix.Append(u.indexSegment(astutil.Field(parent, "index"))))
			return
		}
	case "parenthesized_expression", "non_null_expression", "as_expression", "satisfies_expression":
		u.RecordUsage(parent, rec, prefix)
		return
	case "variable_declarator":
		if astutil.IsField(parent, "value", ref) {
			u.bind(astutil.Field(parent, "name"), rec, prefix, ref)
			return
		}
	case "assignment_expression":
		if astutil.IsField(parent, "right", ref) {
			left := astutil.Field(parent, "left")
			if astutil.Kind(left) == "object_pattern" {
				u.Destructure(left, rec, prefix)
				return
			}
			u.escape(rec, prefix, ref)
			return
		}
	case "arguments":
		if astutil.CalleeText(parent.Parent(), u.source) == "super" {
			return
		}
		u.escape(rec, prefix, ref)
		return
	case "spread_element", "return_statement", "pair", "array", "jsx_expression",
		"jsx_spread_attribute", "yield_expression":
		u.escape(rec, prefix, ref)
		return
	case "arrow_function":
		if astutil.IsField(parent, "body", ref) {
			u.escape(rec, prefix, ref)
			return
		}
	}
	rec.AddUsage(prefix, ref)
}

// Destructure records and binds every property of an object pattern
// matched against the props of rec at prefix. Rest elements and computed
// keys make the read set unknowable and disable validation.
func (u *Usages) Destructure(pattern *ts.Node, rec *component.Record, prefix pathtree.Path) {
	for _, prop := range astutil.NamedChildren(pattern) {
		switch prop.Kind() {
		case "shorthand_property_identifier_pattern":
			u.bindName(prop, rec, prefix)
		case "object_assignment_pattern":
			left := astutil.Field(prop, "left")
			if astutil.Kind(left) == "shorthand_property_identifier_pattern" {
				u.bindName(left, rec, prefix)
			} else {
				rec.DisableValidation()
			}
		case "pair_pattern":
			key, ok := astutil.PropertyKey(astutil.Field(prop, "key"), u.source)
			if !ok {
				rec.DisableValidation()
				continue
			}
			path := prefix.Append(key)
			rec.AddUsage(path, prop)
			target := astutil.BindingTarget(astutil.Field(prop, "value"))
			switch astutil.Kind(target) {
			case "identifier":
				u.scopes.Bind(astutil.Text(target, u.source), Binding{Component: rec, Path: path})
			case "object_pattern":
				u.Destructure(target, rec, path)
			}
		case "rest_pattern":
			rec.DisableValidation()
		}
	}
}

// DestructureThis handles `const {props} = this` and
// `const {props: {a}} = this`.
func (u *Usages) DestructureThis(pattern *ts.Node, rec *component.Record) {
	for _, prop := range astutil.NamedChildren(pattern) {
		switch prop.Kind() {
		case "shorthand_property_identifier_pattern":
			if name := astutil.Text(prop, u.source); name == "props" {
				u.scopes.Bind(name, Binding{Component: rec})
			}
		case "pair_pattern":
			if key, _ := astutil.PropertyKey(astutil.Field(prop, "key"), u.source); key != "props" {
				continue
			}
			u.bind(astutil.BindingTarget(astutil.Field(prop, "value")), rec, nil, prop)
		}
	}
}

// BindParam binds a parameter pattern that receives the props of rec.
func (u *Usages) BindParam(param *ts.Node, rec *component.Record) {
	u.bind(astutil.BindingTarget(param), rec, nil, param)
}

// bind attaches the props value at prefix to a declaration target.
func (u *Usages) bind(target *ts.Node, rec *component.Record, prefix pathtree.Path, at *ts.Node) {
	switch astutil.Kind(target) {
	case "identifier":
		rec.AddUsage(prefix, at)
		u.scopes.Bind(astutil.Text(target, u.source), Binding{Component: rec, Path: prefix})
	case "object_pattern":
		u.Destructure(target, rec, prefix)
	default:
		u.escape(rec, prefix, at)
	}
}

func (u *Usages) bindName(ident *ts.Node, rec *component.Record, prefix pathtree.Path) {
	name := astutil.Text(ident, u.source)
	path := prefix.Append(name)
	rec.AddUsage(path, ident)
	u.scopes.Bind(name, Binding{Component: rec, Path: path})
}

// escape handles a value leaving static view: the whole props object
// disables validation, a sub-path counts as read.
func (u *Usages) escape(rec *component.Record, prefix pathtree.Path, at *ts.Node) {
	if len(prefix) == 0 {
		rec.DisableValidation()
		return
	}
	rec.AddUsage(prefix, at)
}

func (u *Usages) indexSegment(index *ts.Node) string {
	index = astutil.Unparen(index)
	switch astutil.Kind(index) {
	case "number":
		return astutil.Text(index, u.source)
	case "string":
		return astutil.StringValue(index, u.source)
	}
	return pathtree.Computed
}

// isCallee reports whether member is the function of a call expression.
func isCallee(member *ts.Node) bool {
	call := member.Parent()
	return astutil.Kind(call) == "call_expression" && astutil.IsField(call, "function", member)
}
