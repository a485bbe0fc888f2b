package lint

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/proplint/pkg/astutil"
)

var (
	// ErrUnknownRule is returned when a configuration names a rule that is
	// not registered.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrUnsupportedFile is returned for files whose extension has no grammar.
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// Listeners maps node kinds to callbacks. A key "kind" fires when the
// traversal enters a node of that kind and "kind:exit" when it leaves it.
// "*" and "*:exit" fire for every node.
type Listeners map[string]func(node *ts.Node)

// RuleMeta describes a rule.
type RuleMeta struct {
	Name        string
	Description string
	// Messages maps message IDs to templates with {{key}} placeholders.
	Messages map[string]string
	// Recommended rules are enabled at error severity by default.
	Recommended bool
}

// Rule is a lint rule. Create is called once per file and returns the
// callbacks for that file's traversal.
type Rule interface {
	Meta() RuleMeta
	Create(ctx *Context) Listeners
}

// Options holds a rule's free-form configuration.
type Options map[string]any

// Strings returns the string list stored under key.
func (o Options) Strings(key string) []string {
	switch v := o[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	}
	return nil
}

// Bool returns the boolean stored under key, or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}

// Context is handed to a rule for one file.
type Context struct {
	FilePath string
	Source   []byte
	Settings Settings
	Options  Options
	Logger   *slog.Logger

	meta     RuleMeta
	severity Severity
	sink     func(Violation)
}

// Report records a violation at node using the rule message messageID.
func (c *Context) Report(node *ts.Node, messageID string, data map[string]string) {
	template, ok := c.meta.Messages[messageID]
	if !ok {
		template = messageID
	}
	line, col := astutil.Position(node)
	v := Violation{
		Rule:      c.meta.Name,
		MessageID: messageID,
		Message:   FormatMessage(template, data),
		Severity:  c.severity,
		Line:      line,
		Column:    col,
		Data:      data,
	}
	if node != nil {
		end := node.EndPosition()
		v.EndLine = int(end.Row) + 1
		v.EndColumn = int(end.Column) + 1
	}
	if c.sink != nil {
		c.sink(v)
	}
}

// FormatMessage substitutes {{key}} placeholders in template.
func FormatMessage(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// RuleRegistry holds the available rules by name.
type RuleRegistry struct {
	rules map[string]Rule
}

// NewRuleRegistry returns a registry containing rules.
func NewRuleRegistry(rules ...Rule) *RuleRegistry {
	r := &RuleRegistry{rules: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		r.Register(rule)
	}
	return r
}

// Register adds or replaces a rule.
func (r *RuleRegistry) Register(rule Rule) {
	r.rules[rule.Meta().Name] = rule
}

// Get returns the named rule.
func (r *RuleRegistry) Get(name string) (Rule, error) {
	rule, ok := r.rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
	}
	return rule, nil
}

// Names returns all rule names sorted.
func (r *RuleRegistry) Names() []string {
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rules returns all rules sorted by name.
func (r *RuleRegistry) Rules() []Rule {
	names := r.Names()
	out := make([]Rule, 0, len(names))
	for _, name := range names {
		out = append(out, r.rules[name])
	}
	return out
}
