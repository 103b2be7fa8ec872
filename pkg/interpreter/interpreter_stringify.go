package interpreter

import (
	"strconv"

	"github.com/MMinusOne/endium/pkg/runtime"
)

// Stringify renders a value as program output: pointers are followed and
// strings print bare.
func (i *Interpreter) Stringify(val runtime.Value) (string, error) {
	resolved, err := i.heap.Deref(val)
	if err != nil {
		return "", err
	}
	return runtime.ToString(resolved), nil
}

// Inspect renders a value for interactive display, quoting strings so
// "5" and 5 stay distinguishable.
func (i *Interpreter) Inspect(val runtime.Value) (string, error) {
	resolved, err := i.heap.Deref(val)
	if err != nil {
		return "", err
	}
	if str, ok := resolved.(*runtime.StringValue); ok {
		return strconv.Quote(str.Val()), nil
	}
	return runtime.ToString(resolved), nil
}

// Binding pairs a global name with its rendered value.
type Binding struct {
	Name    string
	Value   string
	Mutable bool
}

// Globals lists the global bindings in name order.
func (i *Interpreter) Globals() ([]Binding, error) {
	names := i.global.Keys()
	out := make([]Binding, 0, len(names))
	for _, name := range names {
		b, err := i.global.Lookup(name)
		if err != nil {
			return nil, err
		}
		text, err := i.Inspect(b.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, Binding{Name: name, Value: text, Mutable: b.Mutable})
	}
	return out, nil
}
