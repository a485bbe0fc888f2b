// Package component recognizes component definitions in a syntax tree and
// keeps a per-file registry of them.
package component

import (
	"unicode"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/proplint/pkg/astutil"
	"github.com/gnana997/proplint/pkg/lint"
)

// Kind classifies a candidate definition node.
type Kind int

const (
	NotAComponent Kind = iota
	ClassBased
	FactoryBased
	Functional
)

func (k Kind) String() string {
	switch k {
	case ClassBased:
		return "class"
	case FactoryBased:
		return "factory"
	case Functional:
		return "functional"
	default:
		return "none"
	}
}

// DefaultName is used for components with no recoverable name.
const DefaultName = "<anonymous>"

// Detector classifies nodes of one source file. It memoizes results and is
// not safe for concurrent use.
type Detector struct {
	settings lint.Settings
	source   []byte
	cache    map[astutil.Key]Kind

	baseClasses   map[string]bool
	createClass   map[string]bool
	createElement string
	wrappers      map[string]bool
}

// NewDetector returns a detector for source using the pragma settings.
func NewDetector(settings lint.Settings, source []byte) *Detector {
	settings = settings.WithDefaults()
	p := settings.Pragma
	return &Detector{
		settings: settings,
		source:   source,
		cache:    make(map[astutil.Key]Kind),
		baseClasses: map[string]bool{
			"Component":          true,
			"PureComponent":      true,
			p + ".Component":     true,
			p + ".PureComponent": true,
		},
		createClass: map[string]bool{
			settings.CreateClass:           true,
			p + "." + settings.CreateClass: true,
		},
		createElement: p + ".createElement",
		wrappers: map[string]bool{
			"memo":            true,
			"forwardRef":      true,
			p + ".memo":       true,
			p + ".forwardRef": true,
		},
	}
}

// Settings returns the settings the detector was built with.
func (d *Detector) Settings() lint.Settings {
	return d.settings
}

// Source returns the file contents.
func (d *Detector) Source() []byte {
	return d.source
}

// Classify returns the component kind of n itself.
func (d *Detector) Classify(n *ts.Node) Kind {
	if n == nil {
		return NotAComponent
	}
	key := astutil.KeyOf(n)
	if k, ok := d.cache[key]; ok {
		return k
	}
	k := d.classify(n)
	d.cache[key] = k
	return k
}

func (d *Detector) classify(n *ts.Node) Kind {
	switch n.Kind() {
	case "object":
		if d.isFactoryObject(n) {
			return FactoryBased
		}
	case "class_declaration", "class":
		if d.isClassComponent(n) {
			return ClassBased
		}
	case "function_declaration", "function_expression", "function", "arrow_function",
		"generator_function_declaration", "generator_function":
		if d.isFunctionalComponent(n) {
			return Functional
		}
	}
	return NotAComponent
}

// FindOwningComponent walks from n (inclusive) through its ancestors and
// returns the nearest factory-call object or class component, or nil.
func (d *Detector) FindOwningComponent(n *ts.Node) *ts.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		switch d.Classify(cur) {
		case ClassBased, FactoryBased:
			return cur
		}
	}
	return nil
}

// FindEnclosingComponent returns the nearest definition of any kind that
// contains n (inclusive), or nil.
func (d *Detector) FindEnclosingComponent(n *ts.Node) *ts.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if d.Classify(cur) != NotAComponent {
			return cur
		}
	}
	return nil
}

// Identity returns the registry key of a definition node.
func (d *Detector) Identity(def *ts.Node) Identity {
	line, col := astutil.Position(def)
	name := d.name(def)
	if name == "" {
		name = DefaultName
	}
	return Identity{Name: name, Line: line, Column: col}
}

func (d *Detector) name(def *ts.Node) string {
	switch astutil.Kind(def) {
	case "class_declaration", "class":
		if name := astutil.Field(def, "name"); name != nil {
			return astutil.Text(name, d.source)
		}
		return astutil.BoundName(def, d.source)
	case "object":
		call := def.Parent().Parent()
		return astutil.BoundName(call, d.source)
	}
	if name := astutil.FunctionName(def, d.source); name != "" {
		return name
	}
	if call := d.wrapperCall(def); call != nil {
		return astutil.BoundName(call, d.source)
	}
	return ""
}

// RenderMethod returns the render method of a class body, or nil.
func (d *Detector) RenderMethod(class *ts.Node) *ts.Node {
	for _, m := range astutil.NamedChildren(astutil.Field(class, "body")) {
		if m.Kind() != "method_definition" || astutil.HasToken(m, "static") {
			continue
		}
		if astutil.Text(astutil.Field(m, "name"), d.source) == "render" {
			return m
		}
	}
	return nil
}

// Heritage returns the superclass expression of a class, or nil.
func Heritage(class *ts.Node) *ts.Node {
	h := astutil.FirstChildOfKind(class, "class_heritage")
	if h == nil {
		return nil
	}
	// TypeScript wraps the superclass in an extends_clause.
	if ext := astutil.FirstChildOfKind(h, "extends_clause"); ext != nil {
		if v := astutil.Field(ext, "value"); v != nil {
			return v
		}
		if kids := astutil.NamedChildren(ext); len(kids) > 0 {
			return kids[0]
		}
		return nil
	}
	if kids := astutil.NamedChildren(h); len(kids) > 0 {
		return kids[0]
	}
	return nil
}

// HasTypedProps reports whether a class passes type arguments to its base
// class, as in `extends Component<Props>`.
func HasTypedProps(class *ts.Node) bool {
	h := astutil.FirstChildOfKind(class, "class_heritage")
	if ext := astutil.FirstChildOfKind(h, "extends_clause"); ext != nil {
		return astutil.Field(ext, "type_arguments") != nil ||
			astutil.FirstChildOfKind(ext, "type_arguments") != nil
	}
	return false
}

func (d *Detector) isClassComponent(class *ts.Node) bool {
	base := Heritage(class)
	if base == nil || !d.baseClasses[astutil.Text(base, d.source)] {
		return false
	}
	render := d.RenderMethod(class)
	if render == nil {
		return false
	}
	body := astutil.Field(render, "body")
	return astutil.ContainsJSX(body) || astutil.ContainsCall(body, d.source, d.createElement)
}

func (d *Detector) isFactoryObject(obj *ts.Node) bool {
	args := obj.Parent()
	if astutil.Kind(args) != "arguments" {
		return false
	}
	if kids := astutil.NamedChildren(args); len(kids) == 0 || !astutil.Same(kids[0], obj) {
		return false
	}
	return d.createClass[astutil.CalleeText(args.Parent(), d.source)]
}

func (d *Detector) isFunctionalComponent(fn *ts.Node) bool {
	if !d.returnsElement(fn) {
		return false
	}
	if name := astutil.Field(fn, "name"); name != nil {
		return capitalized(astutil.Text(name, d.source))
	}

	parent := outerExpression(fn)
	switch astutil.Kind(parent) {
	case "export_statement":
		return true
	case "variable_declarator", "assignment_expression":
		return capitalized(astutil.BoundName(innerChild(parent, fn), d.source))
	case "arguments":
		return d.wrapperCall(fn) != nil
	}
	return false
}

// wrapperCall returns the memo/forwardRef call fn is the argument of.
func (d *Detector) wrapperCall(fn *ts.Node) *ts.Node {
	args := outerExpression(fn)
	if astutil.Kind(args) != "arguments" {
		return nil
	}
	call := args.Parent()
	if d.wrappers[astutil.CalleeText(call, d.source)] {
		return call
	}
	return nil
}

func (d *Detector) returnsElement(fn *ts.Node) bool {
	for _, ret := range astutil.ReturnedExpressions(fn) {
		if astutil.ContainsJSX(ret) || astutil.ContainsCall(ret, d.source, d.createElement) {
			return true
		}
	}
	return false
}

// outerExpression returns the first ancestor of n that is not a
// parenthesized expression.
func outerExpression(n *ts.Node) *ts.Node {
	p := n.Parent()
	for astutil.Kind(p) == "parenthesized_expression" {
		p = p.Parent()
	}
	return p
}

// innerChild returns the direct child of parent on the path to n.
func innerChild(parent, n *ts.Node) *ts.Node {
	cur := n
	for cur != nil && !astutil.Same(cur.Parent(), parent) {
		cur = cur.Parent()
	}
	return cur
}

func capitalized(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}
