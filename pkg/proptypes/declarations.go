// Package proptypes extracts declared and used prop paths for the
// components of one file and reconciles them.
package proptypes

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/proplint/pkg/astutil"
	"github.com/gnana997/proplint/pkg/component"
	"github.com/gnana997/proplint/pkg/pathtree"
)

// leafValidators are validators whose value has no readable structure.
var leafValidators = map[string]bool{
	"string":      true,
	"number":      true,
	"bool":        true,
	"symbol":      true,
	"bigint":      true,
	"func":        true,
	"node":        true,
	"element":     true,
	"elementType": true,
}

// Declarations builds declared path trees from prop type expressions.
type Declarations struct {
	registry *component.Registry
	source   []byte
}

// NewDeclarations returns an extractor resolving component references
// through registry.
func NewDeclarations(registry *component.Registry) *Declarations {
	return &Declarations{
		registry: registry,
		source:   registry.Detector().Source(),
	}
}

// ExtractDeclaredPaths reads the value assigned to a component's
// propTypes and merges it into rec. Values that cannot be resolved
// statically disable validation of rec and return nil.
func (d *Declarations) ExtractDeclaredPaths(value *ts.Node, rec *component.Record) *pathtree.Node {
	if rec == nil {
		return nil
	}
	value = astutil.Unparen(value)

	var tree *pathtree.Node
	switch astutil.Kind(value) {
	case "object":
		tree = d.objectTree(value, rec)
	case "identifier":
		if obj := d.resolveObject(value); obj != nil {
			tree = d.objectTree(obj, rec)
		}
	case "member_expression":
		tree = d.copyFrom(value)
	}

	if tree == nil {
		rec.DisableValidation()
		return nil
	}
	rec.Declare(tree)
	return tree
}

// objectTree turns an object literal of validators into a branch.
func (d *Declarations) objectTree(obj *ts.Node, rec *component.Record) *pathtree.Node {
	tree := pathtree.NewBranch(obj)
	for _, member := range astutil.NamedChildren(obj) {
		switch member.Kind() {
		case "pair":
			key, ok := astutil.PropertyKey(astutil.Field(member, "key"), d.source)
			if !ok {
				rec.DisableValidation()
				continue
			}
			child := d.validatorTree(astutil.Field(member, "value"), rec)
			child.Source = member
			tree.Set(key, child)
		case "shorthand_property_identifier":
			tree.Set(astutil.Text(member, d.source), pathtree.NewOpen(member))
		case "method_definition":
			key, ok := astutil.PropertyKey(astutil.Field(member, "name"), d.source)
			if !ok {
				rec.DisableValidation()
				continue
			}
			tree.Set(key, pathtree.NewOpen(member))
		case "spread_element":
			rec.DisableValidation()
		}
	}
	return tree
}

// validatorTree maps one validator expression to a tree node.
func (d *Declarations) validatorTree(v *ts.Node, rec *component.Record) *pathtree.Node {
	v = astutil.Unparen(v)
	switch astutil.Kind(v) {
	case "member_expression":
		prop := astutil.Text(astutil.Field(v, "property"), d.source)
		if prop == "isRequired" {
			return d.validatorTree(astutil.Field(v, "object"), rec)
		}
		if leafValidators[prop] {
			return pathtree.NewLeaf(v)
		}
		return pathtree.NewOpen(v)
	case "identifier":
		if leafValidators[astutil.Text(v, d.source)] {
			return pathtree.NewLeaf(v)
		}
		return pathtree.NewOpen(v)
	case "call_expression":
		return d.callTree(v, rec)
	}
	return pathtree.NewOpen(v)
}

func (d *Declarations) callTree(call *ts.Node, rec *component.Record) *pathtree.Node {
	var arg *ts.Node
	if args := astutil.NamedChildren(astutil.Field(call, "arguments")); len(args) > 0 {
		arg = astutil.Unparen(args[0])
	}

	switch astutil.LastSegment(astutil.CalleeText(call, d.source)) {
	case "shape", "exact":
		if astutil.Kind(arg) == "object" {
			return d.objectTree(arg, rec)
		}
	case "arrayOf", "objectOf":
		if arg != nil {
			tree := pathtree.NewBranch(call)
			tree.Set(pathtree.Wildcard, d.validatorTree(arg, rec))
			return tree
		}
	case "oneOfType":
		if astutil.Kind(arg) == "array" {
			var merged *pathtree.Node
			for _, alt := range astutil.NamedChildren(arg) {
				merged = pathtree.Merge(merged, d.validatorTree(alt, rec))
			}
			if merged != nil {
				merged.Source = call
				return merged
			}
		}
	case "oneOf":
		return pathtree.NewLeaf(call)
	}
	return pathtree.NewOpen(call)
}

// resolveObject finds a module-level `const name = {...}` for identifier.
func (d *Declarations) resolveObject(ident *ts.Node) *ts.Node {
	name := astutil.Text(ident, d.source)
	program := ident
	for program.Parent() != nil {
		program = program.Parent()
	}
	for _, stmt := range astutil.NamedChildren(program) {
		if stmt.Kind() == "export_statement" {
			if decl := astutil.Field(stmt, "declaration"); decl != nil {
				stmt = decl
			}
		}
		if stmt.Kind() != "lexical_declaration" && stmt.Kind() != "variable_declaration" {
			continue
		}
		for _, decl := range astutil.NamedChildren(stmt) {
			if decl.Kind() != "variable_declarator" {
				continue
			}
			if astutil.Text(astutil.Field(decl, "name"), d.source) != name {
				continue
			}
			if value := astutil.Unparen(astutil.Field(decl, "value")); astutil.Kind(value) == "object" {
				return value
			}
			return nil
		}
	}
	return nil
}

// copyFrom handles `Other.propTypes`, copying another component's tree.
func (d *Declarations) copyFrom(member *ts.Node) *pathtree.Node {
	if astutil.Text(astutil.Field(member, "property"), d.source) != "propTypes" {
		return nil
	}
	other := d.registry.GetByName(astutil.Text(astutil.Field(member, "object"), d.source))
	if other == nil || other.ValidationDisabled() || other.Declared == nil {
		return nil
	}
	return other.Declared.Clone()
}
