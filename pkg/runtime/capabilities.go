package runtime

import (
	"math"
)

// AssignOp names a compound-assignment operator.
type AssignOp string

const (
	AssignAdd      AssignOp = "+="
	AssignSubtract AssignOp = "-="
	AssignMultiply AssignOp = "*="
	AssignDivide   AssignOp = "/="
	AssignModulo   AssignOp = "%="
	AssignExponent AssignOp = "**="
)

// Incrementer is implemented by values that can step by a numeric delta.
type Incrementer interface {
	Increment(delta float64) (Value, error)
}

// CompoundAssigner is implemented by values that support `op=`. The
// returned value replaces the receiver; it may be the receiver itself when
// the update happened in place.
type CompoundAssigner interface {
	CompoundAssign(op AssignOp, operand Value) (Value, error)
}

// PropertyBearer is implemented by values exposing named properties.
type PropertyBearer interface {
	Property(name string) (Value, bool)
	SetProperty(name string, value Value) error
}

// capabilitySet is one row of the dispatch table.
type capabilitySet struct {
	increment      func(v Value, delta float64) (Value, error)
	compoundAssign func(v Value, op AssignOp, operand Value) (Value, error)
	property       func(v Value, name string) (Value, bool)
	setProperty    func(v Value, name string, value Value) error
}

var defaultCapabilities = capabilitySet{
	increment: func(v Value, _ float64) (Value, error) {
		return nil, &UnsupportedOperationError{Op: "increment", Kind: v.Kind()}
	},
	compoundAssign: func(v Value, op AssignOp, _ Value) (Value, error) {
		return nil, &UnsupportedOperationError{Op: string(op), Kind: v.Kind()}
	},
	property: func(Value, string) (Value, bool) {
		return UndefinedValue{}, false
	},
	setProperty: func(v Value, name string, _ Value) error {
		return &UnsupportedOperationError{Op: "set property " + name, Kind: v.Kind()}
	},
}

// coercingCapabilities serve the primitives without a dedicated Go
// implementation: they coerce to a number (or concatenate with a string).
var coercingCapabilities = capabilitySet{
	increment: func(v Value, delta float64) (Value, error) {
		return NumberValue{Val: ToNumber(v) + delta}, nil
	},
	compoundAssign: coerceCompound,
	property:       defaultCapabilities.property,
	setProperty:    defaultCapabilities.setProperty,
}

var capabilityTable = map[Kind]capabilitySet{
	KindNumber:    viaInterfaces,
	KindString:    viaInterfaces,
	KindFunction:  viaInterfaces,
	KindBoolean:   coercingCapabilities,
	KindNull:      coercingCapabilities,
	KindUndefined: coercingCapabilities,
}

// viaInterfaces routes each operation to the Go interface the value
// implements, falling back to the default entry.
var viaInterfaces = capabilitySet{
	increment: func(v Value, delta float64) (Value, error) {
		if inc, ok := v.(Incrementer); ok {
			return inc.Increment(delta)
		}
		return defaultCapabilities.increment(v, delta)
	},
	compoundAssign: func(v Value, op AssignOp, operand Value) (Value, error) {
		if ca, ok := v.(CompoundAssigner); ok {
			return ca.CompoundAssign(op, operand)
		}
		return defaultCapabilities.compoundAssign(v, op, operand)
	},
	property: func(v Value, name string) (Value, bool) {
		if pb, ok := v.(PropertyBearer); ok {
			return pb.Property(name)
		}
		return defaultCapabilities.property(v, name)
	},
	setProperty: func(v Value, name string, value Value) error {
		if pb, ok := v.(PropertyBearer); ok {
			return pb.SetProperty(name, value)
		}
		return defaultCapabilities.setProperty(v, name, value)
	},
}

func capabilitiesFor(v Value) capabilitySet {
	if v == nil {
		return defaultCapabilities
	}
	if set, ok := capabilityTable[v.Kind()]; ok {
		return set
	}
	return defaultCapabilities
}

// Increment returns v stepped by delta.
func Increment(v Value, delta float64) (Value, error) {
	return capabilitiesFor(v).increment(v, delta)
}

// CompoundAssign applies op with operand to target and returns the value
// that should replace target.
func CompoundAssign(target Value, op AssignOp, operand Value) (Value, error) {
	return capabilitiesFor(target).compoundAssign(target, op, operand)
}

// GetProperty reads a property; values without the capability report false.
func GetProperty(v Value, name string) (Value, bool) {
	return capabilitiesFor(v).property(v, name)
}

// SetProperty writes a property.
func SetProperty(v Value, name string, value Value) error {
	return capabilitiesFor(v).setProperty(v, name, value)
}

// HasProperties reports whether the value takes part in property lookup.
func HasProperties(v Value) bool {
	_, ok := v.(PropertyBearer)
	return ok
}

//-----------------------------------------------------------------------------
// Per-variant implementations
//-----------------------------------------------------------------------------

func (v NumberValue) Increment(delta float64) (Value, error) {
	return NumberValue{Val: v.Val + delta}, nil
}

func (v NumberValue) CompoundAssign(op AssignOp, operand Value) (Value, error) {
	return coerceCompound(v, op, operand)
}

func (v *StringValue) Increment(delta float64) (Value, error) {
	return NumberValue{Val: StringToNumber(v.val) + delta}, nil
}

func (v *StringValue) CompoundAssign(op AssignOp, operand Value) (Value, error) {
	if op == AssignAdd {
		v.Append(ToString(operand))
		return v, nil
	}
	return coerceCompound(v, op, operand)
}

func (v *StringValue) Property(name string) (Value, bool) {
	if name == "length" {
		return v.length, true
	}
	return UndefinedValue{}, false
}

func (v *StringValue) SetProperty(name string, _ Value) error {
	return &UnsupportedOperationError{Op: "set property " + name, Kind: KindString}
}

func (v *FunctionValue) Property(name string) (Value, bool) {
	if val, ok := v.props[name]; ok {
		return val, true
	}
	switch name {
	case "name":
		return NewString(v.Name), true
	case "length":
		return NumberValue{Val: float64(len(v.Params))}, true
	}
	return UndefinedValue{}, false
}

func (v *FunctionValue) SetProperty(name string, value Value) error {
	if name == "name" || name == "length" {
		return &UnsupportedOperationError{Op: "set property " + name, Kind: KindFunction}
	}
	if v.props == nil {
		v.props = make(map[string]Value)
	}
	v.props[name] = value
	return nil
}

// coerceCompound implements `op=` for everything but in-place string append.
func coerceCompound(target Value, op AssignOp, operand Value) (Value, error) {
	if op == AssignAdd {
		_, targetIsString := target.(*StringValue)
		_, operandIsString := operand.(*StringValue)
		if targetIsString || operandIsString {
			return NewString(ToString(target) + ToString(operand)), nil
		}
	}
	a, b := ToNumber(target), ToNumber(operand)
	switch op {
	case AssignAdd:
		return NumberValue{Val: a + b}, nil
	case AssignSubtract:
		return NumberValue{Val: a - b}, nil
	case AssignMultiply:
		return NumberValue{Val: a * b}, nil
	case AssignDivide:
		return NumberValue{Val: a / b}, nil
	case AssignModulo:
		return NumberValue{Val: math.Mod(a, b)}, nil
	case AssignExponent:
		return NumberValue{Val: math.Pow(a, b)}, nil
	default:
		return nil, &UnsupportedOperationError{Op: string(op), Kind: target.Kind()}
	}
}
