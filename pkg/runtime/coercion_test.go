package runtime

import (
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tenth, fifth := 0.1, 0.2
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{5, "5"},
		{-12, "-12"},
		{3.14, "3.14"},
		{tenth + fifth, "0.30000000000000004"},
		{1e10, "10000000000"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{0.000001, "0.000001"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Fatalf("FormatNumber(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestStringToNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"  42 ", 42},
		{"3.5", 3.5},
		{".5", 0.5},
		{"-7", -7},
		{"1e3", 1000},
		{"0x1F", 31},
		{"0o17", 15},
		{"0b101", 5},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
	}
	for _, tc := range cases {
		if got := StringToNumber(tc.in); got != tc.want {
			t.Fatalf("StringToNumber(%q): expected %v, got %v", tc.in, tc.want, got)
		}
	}
	for _, bad := range []string{"abc", "1_000", "inf", "0x", "12px", "0x1p3"} {
		if got := StringToNumber(bad); !math.IsNaN(got) {
			t.Fatalf("StringToNumber(%q): expected NaN, got %v", bad, got)
		}
	}
}

func TestToStringAndTruthy(t *testing.T) {
	fn := &FunctionValue{Name: "add", Params: []string{"a", "b"}}
	cases := []struct {
		in     Value
		text   string
		truthy bool
	}{
		{NumberValue{Val: 0}, "0", false},
		{NumberValue{Val: math.NaN()}, "NaN", false},
		{NumberValue{Val: 2}, "2", true},
		{NewString(""), "", false},
		{NewString("x"), "x", true},
		{BoolValue{Val: true}, "true", true},
		{NullValue{}, "null", false},
		{UndefinedValue{}, "undefined", false},
		{fn, "function add(a, b) { [code] }", true},
	}
	for _, tc := range cases {
		if got := ToString(tc.in); got != tc.text {
			t.Fatalf("ToString(%#v): expected %q, got %q", tc.in, tc.text, got)
		}
		if got := Truthy(tc.in); got != tc.truthy {
			t.Fatalf("Truthy(%#v): expected %v, got %v", tc.in, tc.truthy, got)
		}
	}
}

func TestToNumberOfFunctionIsNaN(t *testing.T) {
	if got := ToNumber(&FunctionValue{}); !math.IsNaN(got) {
		t.Fatalf("expected NaN, got %v", got)
	}
}
