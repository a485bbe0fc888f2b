package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/proplint/pkg/lint"
	"github.com/gnana997/proplint/pkg/parser"
)

func parseJS(t *testing.T, source string) (*ts.Node, []byte) {
	t.Helper()
	manager := parser.NewParserManager(nil)
	t.Cleanup(func() { manager.Close() })

	src := []byte(source)
	tree, err := manager.Parse(src, parser.LanguageJavaScript)
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree.RootNode(), src
}

func findAll(root *ts.Node, kind string) []*ts.Node {
	var out []*ts.Node
	var visit func(n *ts.Node)
	visit = func(n *ts.Node) {
		if n.Kind() == kind {
			out = append(out, n)
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(root)
	return out
}

func findFirst(t *testing.T, root *ts.Node, kind string) *ts.Node {
	t.Helper()
	nodes := findAll(root, kind)
	require.NotEmpty(t, nodes, "no %s node", kind)
	return nodes[0]
}

func TestClassify_ClassComponent(t *testing.T) {
	root, src := parseJS(t, `
class Hello extends React.Component {
  render() { return <div>{this.props.name}</div>; }
}
class Plain extends Component {
  render() { return <span/>; }
}
class Store extends React.Component {
  render() { return null; }
}
class Model extends Base {
  render() { return <div/>; }
}
`)
	d := NewDetector(lint.DefaultSettings(), src)
	classes := findAll(root, "class_declaration")
	require.Len(t, classes, 4)

	assert.Equal(t, ClassBased, d.Classify(classes[0]))
	assert.Equal(t, ClassBased, d.Classify(classes[1]))
	assert.Equal(t, NotAComponent, d.Classify(classes[2]), "render without JSX")
	assert.Equal(t, NotAComponent, d.Classify(classes[3]), "unknown base class")
}

func TestClassify_CreateElementRender(t *testing.T) {
	root, src := parseJS(t, `
class Hello extends React.PureComponent {
  render() { return React.createElement('div', null, this.props.name); }
}
`)
	d := NewDetector(lint.DefaultSettings(), src)
	assert.Equal(t, ClassBased, d.Classify(findFirst(t, root, "class_declaration")))
}

func TestClassify_CustomPragma(t *testing.T) {
	root, src := parseJS(t, `
class Hello extends Preact.Component {
  render() { return <div/>; }
}
`)
	settings := lint.DefaultSettings()
	assert.Equal(t, NotAComponent, NewDetector(settings, src).Classify(findFirst(t, root, "class_declaration")))

	settings.Pragma = "Preact"
	assert.Equal(t, ClassBased, NewDetector(settings, src).Classify(findFirst(t, root, "class_declaration")))
}

func TestClassify_Factory(t *testing.T) {
	root, src := parseJS(t, `
var Hello = createReactClass({
  render: function() { return <div/>; }
});
var Other = React.createReactClass({});
var notOne = build({ render: function() { return <div/>; } });
`)
	d := NewDetector(lint.DefaultSettings(), src)
	objects := findAll(root, "object")
	require.Len(t, objects, 3)

	assert.Equal(t, FactoryBased, d.Classify(objects[0]))
	assert.Equal(t, FactoryBased, d.Classify(objects[1]))
	assert.Equal(t, NotAComponent, d.Classify(objects[2]))
	assert.Equal(t, "Hello", d.Identity(objects[0]).Name)
}

func TestClassify_Functional(t *testing.T) {
	root, src := parseJS(t, `
function Hello(props) { return <div>{props.name}</div>; }
const Arrow = ({ name }) => <b>{name}</b>;
const Memo = React.memo(function (props) { return <i/>; });
function helper() { return <div/>; }
const list = items.map(item => <li>{item}</li>);
function Empty() { return null; }
`)
	d := NewDetector(lint.DefaultSettings(), src)

	decls := findAll(root, "function_declaration")
	require.Len(t, decls, 3)
	assert.Equal(t, Functional, d.Classify(decls[0]))
	assert.Equal(t, NotAComponent, d.Classify(decls[1]), "lowercase name")
	assert.Equal(t, NotAComponent, d.Classify(decls[2]), "no JSX returned")

	arrows := findAll(root, "arrow_function")
	require.Len(t, arrows, 2)
	assert.Equal(t, Functional, d.Classify(arrows[0]))
	assert.Equal(t, NotAComponent, d.Classify(arrows[1]), "callback")

	memo := findFirst(t, root, "function_expression")
	assert.Equal(t, Functional, d.Classify(memo))
	assert.Equal(t, "Memo", d.Identity(memo).Name)
}

func TestClassify_ExportDefaultAnonymous(t *testing.T) {
	root, src := parseJS(t, `export default (props) => <div>{props.x}</div>;`)
	d := NewDetector(lint.DefaultSettings(), src)

	fn := findFirst(t, root, "arrow_function")
	assert.Equal(t, Functional, d.Classify(fn))
	assert.Equal(t, DefaultName, d.Identity(fn).Name)
}

func TestFindOwningComponent(t *testing.T) {
	root, src := parseJS(t, `
class Hello extends React.Component {
  handle() { return () => this.props.onClick(); }
  render() { return <div/>; }
}
function free() { return this.props; }
`)
	d := NewDetector(lint.DefaultSettings(), src)

	members := findAll(root, "member_expression")
	var inside, outside *ts.Node
	for _, m := range members {
		if m.Utf8Text(src) == "this.props" {
			if inside == nil {
				inside = m
			} else {
				outside = m
			}
		}
	}
	require.NotNil(t, inside)
	require.NotNil(t, outside)

	owner := d.FindOwningComponent(inside)
	require.NotNil(t, owner)
	assert.Equal(t, "class_declaration", owner.Kind())
	assert.Nil(t, d.FindOwningComponent(outside))
}

func TestIdentity_Position(t *testing.T) {
	root, src := parseJS(t, "\n  class Hello extends React.Component { render() { return <div/>; } }")
	d := NewDetector(lint.DefaultSettings(), src)

	id := d.Identity(findFirst(t, root, "class_declaration"))
	assert.Equal(t, Identity{Name: "Hello", Line: 2, Column: 3}, id)
	assert.Equal(t, "Hello@2:3", id.String())
}
