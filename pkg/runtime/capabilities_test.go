package runtime

import (
	"errors"
	"math"
	"testing"
)

func TestNumberCompoundAssign(t *testing.T) {
	cases := []struct {
		op      AssignOp
		operand Value
		want    float64
	}{
		{AssignAdd, NumberValue{Val: 5}, 15},
		{AssignSubtract, NumberValue{Val: 4}, 6},
		{AssignMultiply, NumberValue{Val: 3}, 30},
		{AssignDivide, NumberValue{Val: 4}, 2.5},
		{AssignModulo, NumberValue{Val: 3}, 1},
		{AssignExponent, NumberValue{Val: 2}, 100},
		{AssignSubtract, NewString("2"), 8},
		{AssignMultiply, BoolValue{Val: true}, 10},
		{AssignAdd, NullValue{}, 10},
	}
	for _, tc := range cases {
		got, err := CompoundAssign(NumberValue{Val: 10}, tc.op, tc.operand)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.op, err)
		}
		num, ok := got.(NumberValue)
		if !ok || num.Val != tc.want {
			t.Fatalf("10 %s %#v: expected %v, got %#v", tc.op, tc.operand, tc.want, got)
		}
	}
}

func TestDivideByZeroFollowsIEEE(t *testing.T) {
	got, err := CompoundAssign(NumberValue{Val: 1}, AssignDivide, NumberValue{Val: 0})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !math.IsInf(got.(NumberValue).Val, 1) {
		t.Fatalf("expected +Inf, got %#v", got)
	}
}

func TestStringAppendIsInPlace(t *testing.T) {
	s := NewString("foo")
	got, err := CompoundAssign(s, AssignAdd, NumberValue{Val: 3})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got != Value(s) {
		t.Fatalf("expected the same string to be returned")
	}
	if s.Val() != "foo3" {
		t.Fatalf("expected foo3, got %q", s.Val())
	}
	length, ok := GetProperty(s, "length")
	if !ok || length.(NumberValue).Val != 4 {
		t.Fatalf("expected length 4, got %#v", length)
	}
}

func TestStringAppendCoercesOperands(t *testing.T) {
	s := NewString("v=")
	for _, operand := range []Value{NumberValue{Val: 1.5}, BoolValue{Val: false}, NullValue{}, UndefinedValue{}, NewString("!")} {
		if _, err := CompoundAssign(s, AssignAdd, operand); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	}
	if s.Val() != "v=1.5falsenullundefined!" {
		t.Fatalf("unexpected result %q", s.Val())
	}
}

func TestStringNumericCompoundProducesNumber(t *testing.T) {
	got, err := CompoundAssign(NewString("6"), AssignMultiply, NumberValue{Val: 2})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if num, ok := got.(NumberValue); !ok || num.Val != 12 {
		t.Fatalf("expected 12, got %#v", got)
	}
}

func TestNumberPlusStringConcatenates(t *testing.T) {
	got, err := CompoundAssign(NumberValue{Val: 5}, AssignAdd, NewString("2"))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if str, ok := got.(*StringValue); !ok || str.Val() != "52" {
		t.Fatalf("expected string 52, got %#v", got)
	}
}

func TestIncrement(t *testing.T) {
	cases := []struct {
		in   Value
		want float64
	}{
		{NumberValue{Val: 1}, 2},
		{NewString("5"), 6},
		{BoolValue{Val: true}, 2},
		{NullValue{}, 1},
	}
	for _, tc := range cases {
		got, err := Increment(tc.in, 1)
		if err != nil {
			t.Fatalf("%#v: unexpected error %v", tc.in, err)
		}
		if num, ok := got.(NumberValue); !ok || num.Val != tc.want {
			t.Fatalf("%#v++: expected %v, got %#v", tc.in, tc.want, got)
		}
	}
	got, err := Increment(UndefinedValue{}, -1)
	if err != nil || !math.IsNaN(got.(NumberValue).Val) {
		t.Fatalf("expected NaN for undefined--, got %#v (%v)", got, err)
	}
}

func TestFunctionCapabilitiesAreUnsupported(t *testing.T) {
	fn := &FunctionValue{Name: "f"}
	var unsupported *UnsupportedOperationError
	if _, err := Increment(fn, 1); !errors.As(err, &unsupported) || unsupported.Kind != KindFunction {
		t.Fatalf("expected unsupported increment, got %v", err)
	}
	if _, err := CompoundAssign(fn, AssignAdd, NumberValue{Val: 1}); !errors.As(err, &unsupported) {
		t.Fatalf("expected unsupported compound assign, got %v", err)
	}
	if _, err := Increment(PointerValue{Handle: "x"}, 1); !errors.As(err, &unsupported) || unsupported.Kind != KindPointer {
		t.Fatalf("expected pointers to use the default entry, got %v", err)
	}
}

func TestStringLengthIsReadOnly(t *testing.T) {
	s := NewString("abc")
	var unsupported *UnsupportedOperationError
	if err := SetProperty(s, "length", NumberValue{Val: 1}); !errors.As(err, &unsupported) {
		t.Fatalf("expected read-only length, got %v", err)
	}
	if s.Length().Val != 3 {
		t.Fatalf("expected length to stay 3, got %v", s.Length().Val)
	}
}

func TestStringLengthCountsUTF16Units(t *testing.T) {
	if got := NewString("é😀").Length().Val; got != 3 {
		t.Fatalf("expected 3 code units, got %v", got)
	}
}

func TestFunctionProperties(t *testing.T) {
	fn := &FunctionValue{Name: "add", Params: []string{"a", "b"}}
	name, ok := GetProperty(fn, "name")
	if !ok || name.(*StringValue).Val() != "add" {
		t.Fatalf("expected name add, got %#v", name)
	}
	length, _ := GetProperty(fn, "length")
	if length.(NumberValue).Val != 2 {
		t.Fatalf("expected length 2, got %#v", length)
	}
	if err := SetProperty(fn, "tag", BoolValue{Val: true}); err != nil {
		t.Fatalf("set property failed: %v", err)
	}
	tag, ok := GetProperty(fn, "tag")
	if !ok || !tag.(BoolValue).Val {
		t.Fatalf("expected tag true, got %#v", tag)
	}
	if err := SetProperty(NumberValue{Val: 1}, "x", NullValue{}); err == nil {
		t.Fatalf("expected numbers to reject properties")
	}
}

func TestPropertyPathResolve(t *testing.T) {
	heap := NewHeap()
	fn := &FunctionValue{Name: "greet"}
	if err := fn.SetProperty("label", heap.Allocate(NewString("hello"))); err != nil {
		t.Fatalf("set property failed: %v", err)
	}

	path := NewPropertyPath("label")
	path.Add("length")
	got, err := path.Resolve(fn, heap)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if num, ok := got.(NumberValue); !ok || num.Val != 5 {
		t.Fatalf("expected 5, got %#v", got)
	}
	if path.String() != "label.length" || path.Len() != 2 {
		t.Fatalf("unexpected path %q (%d)", path.String(), path.Len())
	}
}

func TestPropertyPathStopsAtMissingSegment(t *testing.T) {
	cases := []*PropertyPath{
		NewPropertyPath("missing", "length"),
		NewPropertyPath("length", "length"),
	}
	for _, path := range cases {
		got, err := path.Resolve(NewString("abc"), nil)
		if err != nil {
			t.Fatalf("%s: resolve failed: %v", path, err)
		}
		if _, ok := got.(UndefinedValue); !ok {
			t.Fatalf("%s: expected undefined, got %#v", path, got)
		}
	}
}

func TestPropertyPathOnNonBearingRoot(t *testing.T) {
	got, err := NewPropertyPath("length").Resolve(NumberValue{Val: 1}, nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.Kind() != KindUndefined {
		t.Fatalf("expected undefined, got %#v", got)
	}
}
