package runtime

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber converts a value using the language's numeric coercion rules.
// Pointers must be dereferenced by the caller.
func ToNumber(v Value) float64 {
	switch val := v.(type) {
	case NumberValue:
		return val.Val
	case BoolValue:
		if val.Val {
			return 1
		}
		return 0
	case NullValue:
		return 0
	case *StringValue:
		return StringToNumber(val.Val())
	default:
		return math.NaN()
	}
}

// StringToNumber parses numeric text. Surrounding whitespace is ignored and
// the empty string is zero; anything unparseable is NaN.
func StringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	lower := strings.ToLower(s)
	for _, prefix := range []struct {
		text string
		base int
	}{{"0x", 16}, {"0o", 8}, {"0b", 2}} {
		if strings.HasPrefix(lower, prefix.text) {
			n, err := strconv.ParseUint(s[2:], prefix.base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	if !isDecimalLiteral(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

// isDecimalLiteral rejects forms strconv accepts but the language does not
// (underscores, "inf", hex floats).
func isDecimalLiteral(s string) bool {
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == 'e', r == 'E':
		case (r == '+' || r == '-') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
		default:
			return false
		}
	}
	return true
}

// ToString converts a value to its textual form. Pointers must be
// dereferenced by the caller.
func ToString(v Value) string {
	switch val := v.(type) {
	case *StringValue:
		return val.Val()
	case NumberValue:
		return FormatNumber(val.Val)
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case NullValue:
		return "null"
	case UndefinedValue:
		return "undefined"
	case *FunctionValue:
		return "function " + val.Name + "(" + strings.Join(val.Params, ", ") + ") { [code] }"
	case PointerValue:
		return "<pointer " + string(val.Handle) + ">"
	default:
		return ""
	}
}

// FormatNumber renders a float the way the language prints numbers:
// integral values without a fraction, exponent form outside [1e-6, 1e21).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + string(sign) + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Truthy applies the language's boolean coercion.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case BoolValue:
		return val.Val
	case NumberValue:
		return val.Val != 0 && !math.IsNaN(val.Val)
	case *StringValue:
		return val.Val() != ""
	case NullValue, UndefinedValue:
		return false
	default:
		return true
	}
}
