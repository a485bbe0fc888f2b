package proptypes

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/proplint/pkg/astutil"
	"github.com/gnana997/proplint/pkg/component"
	"github.com/gnana997/proplint/pkg/lint"
)

// lifecycleMethods maps lifecycle method names to the index of the
// parameter that receives props.
var lifecycleMethods = map[string]int{
	"constructor":               0,
	"componentWillReceiveProps": 0,
	"shouldComponentUpdate":     0,
	"componentWillUpdate":       0,
	"componentDidUpdate":        0,
}

// asyncSafeLifecycleMethods exist from version 16.3 on.
var asyncSafeLifecycleMethods = map[string]int{
	"UNSAFE_componentWillReceiveProps": 0,
	"UNSAFE_componentWillUpdate":       0,
	"getDerivedStateFromProps":         0,
	"getSnapshotBeforeUpdate":          0,
}

const asyncSafeVersion = "16.3.0"

// Tracker drives component recognition, declaration extraction and usage
// extraction from traversal callbacks. One Tracker serves one file.
type Tracker struct {
	Registry *component.Registry

	detector   *component.Detector
	decls      *Declarations
	usages     *Usages
	scopes     *ScopeStack
	source     []byte
	lifecycles map[string]int
	// declarations are extracted once the whole file has been seen:
	// functions are hoisted and `Other.propTypes` may be assigned later.
	declarations []pendingDeclaration
}

// pendingDeclaration is a propTypes or displayName value waiting for its
// component. rec is nil when the target is only known by name.
type pendingDeclaration struct {
	rec   *component.Record
	name  string
	prop  string
	value *ts.Node
}

// NewTracker returns a tracker for one source file.
func NewTracker(settings lint.Settings, source []byte) *Tracker {
	detector := component.NewDetector(settings, source)
	registry := component.NewRegistry(detector)
	scopes := NewScopeStack()

	lifecycles := make(map[string]int, len(lifecycleMethods)+len(asyncSafeLifecycleMethods))
	for name, idx := range lifecycleMethods {
		lifecycles[name] = idx
	}
	if detector.Settings().VersionAtLeast(asyncSafeVersion) {
		for name, idx := range asyncSafeLifecycleMethods {
			lifecycles[name] = idx
		}
	}

	return &Tracker{
		Registry:   registry,
		detector:   detector,
		decls:      NewDeclarations(registry),
		usages:     NewUsages(scopes, source),
		scopes:     scopes,
		source:     source,
		lifecycles: lifecycles,
	}
}

// Listeners returns the traversal callbacks of the tracker. onFinish runs
// when the program node is left, after every component has been seen and
// declarations have been attached.
func (t *Tracker) Listeners(onFinish func()) lint.Listeners {
	return lint.Listeners{
		"*":      t.Enter,
		"*:exit": t.Exit,
		"program:exit": func(*ts.Node) {
			t.resolveDeclarations()
			if onFinish != nil {
				onFinish()
			}
		},
	}
}

// Enter handles a node on the way down.
func (t *Tracker) Enter(n *ts.Node) {
	switch n.Kind() {
	case "function_declaration", "function_expression", "function", "arrow_function",
		"generator_function_declaration", "generator_function", "method_definition":
		t.enterFunction(n)
	case "class_declaration", "class":
		if t.detector.Classify(n) == component.ClassBased {
			rec := t.Registry.Add(n, component.ClassBased)
			if component.HasTypedProps(n) {
				rec.DisableValidation()
			}
		}
	case "object":
		if t.detector.Classify(n) == component.FactoryBased {
			t.Registry.Add(n, component.FactoryBased)
		}
	case "member_expression":
		t.enterMember(n)
	case "identifier":
		t.enterIdentifier(n)
	case "shorthand_property_identifier":
		t.enterShorthand(n)
	case "variable_declarator":
		t.enterDeclarator(n)
	case "field_definition", "public_field_definition":
		t.enterField(n)
	case "pair":
		t.enterPair(n)
	case "assignment_expression":
		t.enterAssignment(n)
	}
}

// Exit handles a node on the way up.
func (t *Tracker) Exit(n *ts.Node) {
	if astutil.IsFunction(n) {
		t.scopes.Pop()
	}
}

func (t *Tracker) enterFunction(fn *ts.Node) {
	t.scopes.Push()
	for _, p := range astutil.Params(fn) {
		t.unbindPattern(p)
	}

	if t.detector.Classify(fn) == component.Functional {
		rec := t.Registry.Add(fn, component.Functional)
		if astutil.ParamHasType(fn, 0) {
			rec.DisableValidation()
		}
		if p := astutil.Param(fn, 0); p != nil {
			t.usages.BindParam(p, rec)
		}
		return
	}

	if fn.Kind() == "method_definition" {
		t.enterMethod(fn)
		return
	}
	t.enterUpdater(fn)
}

func (t *Tracker) enterMethod(method *ts.Node) {
	name := astutil.Text(astutil.Field(method, "name"), t.source)
	isStatic := astutil.HasToken(method, "static")

	if isStatic && astutil.HasToken(method, "get") && (name == "propTypes" || name == "displayName") {
		rec := t.ownerRecord(method)
		if rec == nil {
			return
		}
		if name == "displayName" {
			rec.DisplayName = true
			return
		}
		for _, ret := range astutil.ReturnedExpressions(method) {
			t.declare(rec, ret)
		}
		return
	}

	idx, ok := t.lifecycles[name]
	if !ok {
		return
	}
	// getDerivedStateFromProps is static; the others are instance methods.
	if isStatic != (name == "getDerivedStateFromProps") {
		return
	}
	if rec := t.ownerRecord(method); rec != nil {
		if p := astutil.Param(method, idx); p != nil {
			t.usages.BindParam(p, rec)
		}
	}
}

// enterUpdater binds the props parameter of a `this.setState((state,
// props) => ...)` updater.
func (t *Tracker) enterUpdater(fn *ts.Node) {
	args := fn.Parent()
	if astutil.Kind(args) != "arguments" {
		return
	}
	if first := astutil.NamedChildren(args); len(first) == 0 || !astutil.Same(first[0], fn) {
		return
	}
	call := args.Parent()
	if astutil.CalleeText(call, t.source) != "this.setState" {
		return
	}
	if rec := t.ownerRecord(call); rec != nil {
		if p := astutil.Param(fn, 1); p != nil {
			t.usages.BindParam(p, rec)
		}
	}
}

func (t *Tracker) enterMember(n *ts.Node) {
	if astutil.Kind(astutil.Field(n, "object")) != "this" ||
		astutil.Text(astutil.Field(n, "property"), t.source) != "props" {
		return
	}
	if rec := t.ownerRecord(n); rec != nil {
		t.usages.RecordUsage(n, rec, nil)
	}
}

func (t *Tracker) enterIdentifier(n *ts.Node) {
	b, ok := t.scopes.Lookup(astutil.Text(n, t.source))
	if !ok {
		return
	}
	if isBindingPosition(n) {
		return
	}
	t.usages.RecordUsage(n, b.Component, b.Path)
}

// enterShorthand handles `{ props }` object literals, where an alias is
// read through a shorthand property.
func (t *Tracker) enterShorthand(n *ts.Node) {
	b, ok := t.scopes.Lookup(astutil.Text(n, t.source))
	if !ok {
		return
	}
	t.usages.escape(b.Component, b.Path, n)
}

func (t *Tracker) enterDeclarator(n *ts.Node) {
	name := astutil.Field(n, "name")
	t.unbindPattern(name)

	value := astutil.Unparen(astutil.Field(n, "value"))
	if astutil.Kind(value) != "this" || astutil.Kind(name) != "object_pattern" {
		return
	}
	if rec := t.ownerRecord(n); rec != nil {
		t.usages.DestructureThis(name, rec)
	}
}

func (t *Tracker) enterField(n *ts.Node) {
	if !astutil.HasToken(n, "static") {
		return
	}
	key := astutil.Field(n, "property")
	if key == nil {
		key = astutil.Field(n, "name")
	}
	switch astutil.Text(key, t.source) {
	case "propTypes":
		if rec := t.ownerRecord(n); rec != nil {
			t.declare(rec, astutil.Field(n, "value"))
		}
	case "displayName":
		if rec := t.ownerRecord(n); rec != nil {
			rec.DisplayName = true
		}
	}
}

func (t *Tracker) enterPair(n *ts.Node) {
	obj := n.Parent()
	if t.detector.Classify(obj) != component.FactoryBased {
		return
	}
	key, _ := astutil.PropertyKey(astutil.Field(n, "key"), t.source)
	switch key {
	case "propTypes":
		t.declare(t.Registry.Add(obj, component.FactoryBased), astutil.Field(n, "value"))
	case "displayName":
		t.Registry.Add(obj, component.FactoryBased).DisplayName = true
	}
}

// enterAssignment queues `Name.propTypes = ...` and
// `Name.displayName = ...`.
func (t *Tracker) enterAssignment(n *ts.Node) {
	left := astutil.Field(n, "left")
	if astutil.Kind(left) != "member_expression" {
		return
	}
	object := astutil.Field(left, "object")
	if astutil.Kind(object) != "identifier" {
		return
	}
	prop := astutil.Text(astutil.Field(left, "property"), t.source)
	if prop != "propTypes" && prop != "displayName" {
		return
	}
	t.declarations = append(t.declarations, pendingDeclaration{
		name:  astutil.Text(object, t.source),
		prop:  prop,
		value: astutil.Field(n, "right"),
	})
}

// declare queues a propTypes value of a known component.
func (t *Tracker) declare(rec *component.Record, value *ts.Node) {
	t.declarations = append(t.declarations, pendingDeclaration{rec: rec, prop: "propTypes", value: value})
}

// resolveDeclarations attaches queued declarations in source order.
// Name-keyed ones that resolve to no component are dropped.
func (t *Tracker) resolveDeclarations() {
	for _, d := range t.declarations {
		rec := d.rec
		if rec == nil {
			rec = t.Registry.GetByName(d.name)
		}
		if rec == nil {
			continue
		}
		if d.prop == "displayName" {
			rec.DisplayName = true
			continue
		}
		t.decls.ExtractDeclaredPaths(d.value, rec)
	}
	t.declarations = nil
}

// ownerRecord returns the record of the class or factory component that
// owns n, registering it if traversal has not reached it yet.
func (t *Tracker) ownerRecord(n *ts.Node) *component.Record {
	owner := t.detector.FindOwningComponent(n)
	if owner == nil {
		return nil
	}
	return t.Registry.Add(owner, t.detector.Classify(owner))
}

// unbindPattern removes every name a binding pattern introduces from the
// current scope.
func (t *Tracker) unbindPattern(p *ts.Node) {
	switch astutil.Kind(p) {
	case "identifier", "shorthand_property_identifier_pattern":
		t.scopes.Unbind(astutil.Text(p, t.source))
	case "assignment_pattern", "object_assignment_pattern":
		t.unbindPattern(astutil.Field(p, "left"))
	case "pair_pattern":
		t.unbindPattern(astutil.Field(p, "value"))
	case "object_pattern", "array_pattern", "rest_pattern":
		for _, c := range astutil.NamedChildren(p) {
			t.unbindPattern(c)
		}
	}
}

// isBindingPosition reports whether an identifier is being declared rather
// than read.
func isBindingPosition(n *ts.Node) bool {
	parent := n.Parent()
	switch astutil.Kind(parent) {
	case "variable_declarator":
		return astutil.IsField(parent, "name", n)
	case "formal_parameters", "required_parameter", "optional_parameter", "rest_pattern":
		return true
	case "arrow_function":
		return astutil.IsField(parent, "parameter", n)
	case "assignment_pattern":
		return astutil.IsField(parent, "left", n)
	case "function_declaration", "function_expression", "class_declaration":
		return astutil.IsField(parent, "name", n)
	}
	return false
}
