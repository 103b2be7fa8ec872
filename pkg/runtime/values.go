package runtime

import (
	"fmt"
	"unicode/utf16"

	"github.com/MMinusOne/endium/pkg/token"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindNumber
	KindString
	KindBoolean
	KindFunction
	KindPointer
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindFunction:
		return "function"
	case KindPointer:
		return "pointer"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// IsReference reports whether values of this kind live on the heap once
// bound to a name.
func IsReference(v Value) bool {
	switch v.(type) {
	case *StringValue, *FunctionValue:
		return true
	default:
		return false
	}
}

//-----------------------------------------------------------------------------
// Primitives
//-----------------------------------------------------------------------------

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBoolean }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

type UndefinedValue struct{}

func (UndefinedValue) Kind() Kind { return KindUndefined }

//-----------------------------------------------------------------------------
// Strings
//-----------------------------------------------------------------------------

// StringValue is mutable text with a cached length property. The length
// counts UTF-16 code units, as the language expects.
type StringValue struct {
	val    string
	length NumberValue
}

// NewString allocates a string value with its length computed.
func NewString(s string) *StringValue {
	v := &StringValue{}
	v.set(s)
	return v
}

func (v *StringValue) Kind() Kind { return KindString }

// Val returns the current text.
func (v *StringValue) Val() string { return v.val }

// Length returns the cached length property.
func (v *StringValue) Length() NumberValue { return v.length }

// Append concatenates text in place and refreshes the length.
func (v *StringValue) Append(s string) {
	v.set(v.val + s)
}

func (v *StringValue) set(s string) {
	v.val = s
	v.length = NumberValue{Val: float64(len(utf16.Encode([]rune(s))))}
}

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

type FunctionValue struct {
	Name    string
	Params  []string
	Body    []token.Token
	Closure *Scope
	props   map[string]Value
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

//-----------------------------------------------------------------------------
// Heap references
//-----------------------------------------------------------------------------

// Handle addresses a heap slot.
type Handle string

type PointerValue struct {
	Handle Handle
}

func (v PointerValue) Kind() Kind { return KindPointer }
