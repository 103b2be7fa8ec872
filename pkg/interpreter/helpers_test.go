package interpreter

import (
	"testing"

	"github.com/MMinusOne/endium/pkg/lexer"
	"github.com/MMinusOne/endium/pkg/runtime"
)

func mustRun(t *testing.T, interp *Interpreter, source string) runtime.Value {
	t.Helper()
	val, err := runSource(t, interp, source)
	if err != nil {
		t.Fatalf("run %q failed: %v", source, err)
	}
	return val
}

func runSource(t *testing.T, interp *Interpreter, source string) (runtime.Value, error) {
	t.Helper()
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize %q failed: %v", source, err)
	}
	return interp.Run(tokens)
}

func mustLookup(t *testing.T, interp *Interpreter, name string) runtime.Value {
	t.Helper()
	val, err := interp.Lookup(name)
	if err != nil {
		t.Fatalf("lookup %s failed: %v", name, err)
	}
	return val
}

func expectNumber(t *testing.T, val runtime.Value, want float64) {
	t.Helper()
	num, ok := val.(runtime.NumberValue)
	if !ok || num.Val != want {
		t.Fatalf("expected number %v, got %#v", want, val)
	}
}

func expectString(t *testing.T, val runtime.Value, want string) {
	t.Helper()
	str, ok := val.(*runtime.StringValue)
	if !ok || str.Val() != want {
		t.Fatalf("expected string %q, got %#v", want, val)
	}
}
