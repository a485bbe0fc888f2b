package proptypes

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/proplint/pkg/component"
	"github.com/gnana997/proplint/pkg/pathtree"
)

// ViolationKind tells declared-but-unused apart from used-but-undeclared.
type ViolationKind int

const (
	Undeclared ViolationKind = iota
	Unused
)

func (k ViolationKind) String() string {
	if k == Unused {
		return "unused"
	}
	return "undeclared"
}

// Violation is one mismatch between declared and used props.
type Violation struct {
	Kind      ViolationKind
	Component component.Identity
	Path      pathtree.Path
	Node      *ts.Node
}

// ReconcileOptions tune Reconcile.
type ReconcileOptions struct {
	// Ignore lists path texts never reported. An entry also covers every
	// path below it.
	Ignore []string
	// SkipShapeProps reports unused declarations at the top level only.
	SkipShapeProps bool
}

// Reconcile diffs declared and used paths of every confirmed component
// whose validation is still enabled. Violations are returned per
// component in registry order, unused before undeclared, each path at
// most once per component.
func Reconcile(registry *component.Registry, opts ReconcileOptions) []Violation {
	ignore := make(map[string]bool, len(opts.Ignore))
	for _, p := range opts.Ignore {
		ignore[p] = true
	}

	var out []Violation
	for _, rec := range registry.All() {
		if !rec.Confirmed || rec.ValidationDisabled() {
			continue
		}
		out = append(out, unused(rec, ignore, opts.SkipShapeProps)...)
		out = append(out, undeclared(rec, ignore)...)
	}
	return out
}

func unused(rec *component.Record, ignore map[string]bool, topLevelOnly bool) []Violation {
	var out []Violation
	for _, entry := range rec.Declared.Entries() {
		if topLevelOnly && len(entry.Path) > 1 {
			continue
		}
		if ignored(entry.Path, ignore) || covered(entry.Path, rec.Used) {
			continue
		}
		out = append(out, Violation{
			Kind:      Unused,
			Component: rec.Identity,
			Path:      entry.Path,
			Node:      entry.Node.Source,
		})
	}
	return out
}

func undeclared(rec *component.Record, ignore map[string]bool) []Violation {
	var out []Violation
	seen := make(map[string]bool)
	for _, use := range rec.Used {
		text := use.Path.String()
		if seen[text] {
			continue
		}
		seen[text] = true
		if ignored(use.Path, ignore) || rec.Declared.Accepts(use.Path) {
			continue
		}
		out = append(out, Violation{
			Kind:      Undeclared,
			Component: rec.Identity,
			Path:      use.Path,
			Node:      use.Node,
		})
	}
	return out
}

func covered(declared pathtree.Path, used []component.Usage) bool {
	for _, use := range used {
		if pathtree.Covers(declared, use.Path) {
			return true
		}
	}
	return false
}

// ignored reports whether path or one of its prefixes is ignored.
func ignored(path pathtree.Path, ignore map[string]bool) bool {
	if len(ignore) == 0 {
		return false
	}
	for i := 1; i <= len(path); i++ {
		if ignore[path[:i].String()] {
			return true
		}
	}
	return false
}
