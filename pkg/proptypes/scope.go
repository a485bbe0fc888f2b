package proptypes

import (
	"github.com/gnana997/proplint/pkg/component"
	"github.com/gnana997/proplint/pkg/pathtree"
)

// Binding records that a local name refers to a component's props, or to
// the value at Path inside them.
type Binding struct {
	Component *component.Record
	Path      pathtree.Path
}

type frame struct {
	bindings map[string]Binding
	// owned is false while bindings is still shared with the parent frame.
	owned bool
}

// ScopeStack tracks alias bindings per function scope. A pushed frame
// shares its parent's bindings until the first write, so entering a
// function costs nothing and a binding made in one function is never
// visible to a sibling.
type ScopeStack struct {
	frames []frame
}

// NewScopeStack returns a stack holding one empty module-level frame.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{frames: []frame{{bindings: map[string]Binding{}, owned: true}}}
}

// Push enters a new function scope.
func (s *ScopeStack) Push() {
	top := s.frames[len(s.frames)-1]
	s.frames = append(s.frames, frame{bindings: top.bindings})
}

// Pop leaves the current function scope. The module frame is never popped.
func (s *ScopeStack) Pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Depth returns the number of frames, including the module frame.
func (s *ScopeStack) Depth() int {
	return len(s.frames)
}

// Lookup returns the binding visible for name in the current scope.
func (s *ScopeStack) Lookup(name string) (Binding, bool) {
	b, ok := s.frames[len(s.frames)-1].bindings[name]
	return b, ok
}

// Bind makes name refer to b in the current scope.
func (s *ScopeStack) Bind(name string, b Binding) {
	s.writable()[name] = b
}

// Unbind hides name in the current scope, e.g. when a parameter or local
// variable shadows an outer alias.
func (s *ScopeStack) Unbind(name string) {
	if _, ok := s.Lookup(name); !ok {
		return
	}
	delete(s.writable(), name)
}

func (s *ScopeStack) writable() map[string]Binding {
	top := &s.frames[len(s.frames)-1]
	if !top.owned {
		cp := make(map[string]Binding, len(top.bindings)+1)
		for k, v := range top.bindings {
			cp[k] = v
		}
		top.bindings = cp
		top.owned = true
	}
	return top.bindings
}
