package component

import (
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/proplint/pkg/astutil"
	"github.com/gnana997/proplint/pkg/pathtree"
)

// Identity is the registry key of a component: its name and the 1-based
// position of its definition node.
type Identity struct {
	Name   string
	Line   int
	Column int
}

func (id Identity) String() string {
	return fmt.Sprintf("%s@%d:%d", id.Name, id.Line, id.Column)
}

// Usage is one prop path read by a component.
type Usage struct {
	Path pathtree.Path
	Node *ts.Node
}

// Record accumulates what is known about one component during a pass.
type Record struct {
	Identity Identity
	Node     *ts.Node
	Kind     Kind
	// Confirmed is set once the definition itself has been recognized, as
	// opposed to a record created early from a usage or declaration.
	Confirmed bool
	// Declared is the root branch of the declared prop tree, nil when the
	// component declares no prop types.
	Declared *pathtree.Node
	Used     []Usage
	// DisplayName is set when the component assigns an explicit name.
	DisplayName bool

	validationDisabled bool
}

// DisableValidation turns off prop checking for this component. It cannot
// be undone.
func (r *Record) DisableValidation() {
	r.validationDisabled = true
}

// ValidationDisabled reports whether DisableValidation was called.
func (r *Record) ValidationDisabled() bool {
	return r.validationDisabled
}

// Declare merges tree into the declared prop tree.
func (r *Record) Declare(tree *pathtree.Node) {
	if tree == nil {
		return
	}
	if r.Declared == nil {
		r.Declared = pathtree.NewBranch(tree.Source)
	}
	r.Declared = pathtree.Merge(r.Declared, tree)
}

// AddUsage appends a used path. Empty paths are ignored.
func (r *Record) AddUsage(path pathtree.Path, node *ts.Node) {
	if len(path) == 0 {
		return
	}
	r.Used = append(r.Used, Usage{Path: path, Node: node})
}

// Registry is the per-file set of component records, in insertion order.
// A fresh Registry is created for every lint pass.
type Registry struct {
	detector *Detector
	records  map[Identity]*Record
	order    []Identity
}

// NewRegistry returns an empty registry resolving nodes with d.
func NewRegistry(d *Detector) *Registry {
	return &Registry{
		detector: d,
		records:  make(map[Identity]*Record),
	}
}

// Detector returns the recognizer backing the registry.
func (r *Registry) Detector() *Detector {
	return r.detector
}

// resolve maps n to the definition node of the component it belongs to.
func (r *Registry) resolve(n *ts.Node) *ts.Node {
	return r.detector.FindEnclosingComponent(n)
}

// Get returns the record of a definition node without resolving
// ancestors.
func (r *Registry) Get(def *ts.Node) *Record {
	if def == nil {
		return nil
	}
	return r.records[r.detector.Identity(def)]
}

// Lookup returns the record stored under id.
func (r *Registry) Lookup(id Identity) *Record {
	return r.records[id]
}

// GetByNode returns the record of the component enclosing n, or nil.
func (r *Registry) GetByNode(n *ts.Node) *Record {
	return r.Get(r.resolve(n))
}

// GetByName returns the component with the given name. When several
// share it, a module-level definition wins over nested ones and a later
// definition over an earlier one.
func (r *Registry) GetByName(name string) *Record {
	var last, topLevel *Record
	for _, id := range r.order {
		if id.Name != name {
			continue
		}
		rec := r.records[id]
		last = rec
		if astutil.EnclosingFunction(rec.Node) == nil {
			topLevel = rec
		}
	}
	if topLevel != nil {
		return topLevel
	}
	return last
}

// Add registers def as a recognized component of the given kind and
// returns its record. Adding the same definition twice returns the
// existing record.
func (r *Registry) Add(def *ts.Node, kind Kind) *Record {
	rec := r.upsertDef(def)
	rec.Kind = kind
	rec.Confirmed = true
	return rec
}

// Upsert resolves n to its enclosing component, creating the record when
// absent, and applies update to it. It returns nil when n is not inside a
// component.
func (r *Registry) Upsert(n *ts.Node, update func(*Record)) *Record {
	def := r.resolve(n)
	if def == nil {
		return nil
	}
	rec := r.upsertDef(def)
	if update != nil {
		update(rec)
	}
	return rec
}

func (r *Registry) upsertDef(def *ts.Node) *Record {
	id := r.detector.Identity(def)
	if rec, ok := r.records[id]; ok {
		return rec
	}
	rec := &Record{Identity: id, Node: def, Kind: r.detector.Classify(def)}
	r.records[id] = rec
	r.order = append(r.order, id)
	return rec
}

// All returns every record in insertion order.
func (r *Registry) All() []*Record {
	out := make([]*Record, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out
}

// Remove deletes the record of the component enclosing n.
func (r *Registry) Remove(n *ts.Node) {
	def := r.resolve(n)
	if def == nil {
		return
	}
	id := r.detector.Identity(def)
	if _, ok := r.records[id]; !ok {
		return
	}
	delete(r.records, id)
	for i, cur := range r.order {
		if cur == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Count returns the number of registered records, including records
// created by Upsert that were never confirmed as components.
func (r *Registry) Count() int {
	return len(r.order)
}

// ConfirmedCount returns the number of records recognized as components.
func (r *Registry) ConfirmedCount() int {
	n := 0
	for _, rec := range r.records {
		if rec.Confirmed {
			n++
		}
	}
	return n
}
