package runtime

import (
	"sort"
)

// Binding is a named value plus its mutability. const declarations produce
// immutable bindings.
type Binding struct {
	Name    string
	Value   Value
	Mutable bool
}

// Set replaces the bound value, refusing immutable bindings.
func (b *Binding) Set(v Value) error {
	if !b.Mutable {
		return &AssignmentToConstantError{Name: b.Name}
	}
	b.Value = v
	return nil
}

// Scope is one lexical frame. Lookups walk the live parent chain on every
// call, so frames observe outer mutations made after they were created.
type Scope struct {
	bindings map[string]*Binding
	parent   *Scope
	depth    int
}

// NewScope creates a new frame, optionally nested under a parent.
func NewScope(parent *Scope) *Scope {
	depth := 0
	if parent != nil {
		depth = parent.depth + 1
	}
	return &Scope{
		bindings: make(map[string]*Binding),
		parent:   parent,
		depth:    depth,
	}
}

// Parent exposes the lexical parent (nil when global).
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Depth is the number of frames between this one and the global frame.
func (s *Scope) Depth() int {
	return s.depth
}

// Extend creates a child frame.
func (s *Scope) Extend() *Scope {
	return NewScope(s)
}

// Declare inserts or overwrites a binding in this frame.
func (s *Scope) Declare(name string, value Value, mutable bool) *Binding {
	b := &Binding{Name: name, Value: value, Mutable: mutable}
	s.bindings[name] = b
	return b
}

// Lookup finds the nearest binding for name.
func (s *Scope) Lookup(name string) (*Binding, error) {
	for frame := s; frame != nil; frame = frame.parent {
		if b, ok := frame.bindings[name]; ok {
			return b, nil
		}
	}
	return nil, &UndefinedVariableError{Name: name}
}

// Get retrieves a bound value, searching outward through the scope chain.
func (s *Scope) Get(name string) (Value, error) {
	b, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	return b.Value, nil
}

// Assign updates the nearest binding for name, honouring mutability.
func (s *Scope) Assign(name string, value Value) error {
	b, err := s.Lookup(name)
	if err != nil {
		return err
	}
	return b.Set(value)
}

// Has reports whether name is bound in this frame only.
func (s *Scope) Has(name string) bool {
	_, ok := s.bindings[name]
	return ok
}

// Snapshot returns a copy of this frame's values. It is a diagnostic view;
// lookups never consult it.
func (s *Scope) Snapshot() map[string]Value {
	out := make(map[string]Value, len(s.bindings))
	for k, b := range s.bindings {
		out[k] = b.Value
	}
	return out
}

// Keys returns this frame's names in sorted order.
func (s *Scope) Keys() []string {
	keys := make([]string, 0, len(s.bindings))
	for k := range s.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
