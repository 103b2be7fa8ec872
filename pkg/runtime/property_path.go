package runtime

import "strings"

type pathNode struct {
	name string
	next *pathNode
}

// PropertyPath is a chain of property names such as `a.b.c` minus the root.
type PropertyPath struct {
	head *pathNode
	tail *pathNode
	size int
}

// NewPropertyPath builds a path from the given segments.
func NewPropertyPath(names ...string) *PropertyPath {
	p := &PropertyPath{}
	for _, name := range names {
		p.Add(name)
	}
	return p
}

// Add appends a segment.
func (p *PropertyPath) Add(name string) {
	node := &pathNode{name: name}
	if p.tail == nil {
		p.head = node
	} else {
		p.tail.next = node
	}
	p.tail = node
	p.size++
}

// Len returns the number of segments.
func (p *PropertyPath) Len() int {
	return p.size
}

// Segments returns the names in order.
func (p *PropertyPath) Segments() []string {
	out := make([]string, 0, p.size)
	for node := p.head; node != nil; node = node.next {
		out = append(out, node.name)
	}
	return out
}

func (p *PropertyPath) String() string {
	return strings.Join(p.Segments(), ".")
}

// Resolve walks the path from root. A value without properties or a missing
// segment ends the walk with undefined. When heap is non-nil, pointers met
// along the way are dereferenced.
func (p *PropertyPath) Resolve(root Value, heap *Heap) (Value, error) {
	current := root
	for node := p.head; node != nil; node = node.next {
		if heap != nil {
			deref, err := heap.Deref(current)
			if err != nil {
				return nil, err
			}
			current = deref
		}
		if !HasProperties(current) {
			return UndefinedValue{}, nil
		}
		next, ok := GetProperty(current, node.name)
		if !ok {
			return UndefinedValue{}, nil
		}
		current = next
	}
	return current, nil
}
