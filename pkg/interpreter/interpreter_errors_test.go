package interpreter

import (
	"errors"
	"testing"

	"github.com/MMinusOne/endium/pkg/runtime"
)

func TestIncrementOnConstantFails(t *testing.T) {
	interp := New()
	_, err := runSource(t, interp, "const a = 5\na++")
	var constErr *runtime.AssignmentToConstantError
	if !errors.As(err, &constErr) || constErr.Name != "a" {
		t.Fatalf("expected AssignmentToConstantError, got %v", err)
	}
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Pos.Line != 2 || rtErr.Pos.Column != 1 {
		t.Fatalf("expected runtime error at 2:1, got %#v", err)
	}
	expectNumber(t, mustLookup(t, interp, "a"), 5)
}

func TestMutatingConstantsFails(t *testing.T) {
	for _, source := range []string{"k = 2", "k += 1", "k **= 2", "--k"} {
		interp := New()
		mustRun(t, interp, "const k = 1")
		_, err := runSource(t, interp, source)
		var constErr *runtime.AssignmentToConstantError
		if !errors.As(err, &constErr) {
			t.Fatalf("%s: expected AssignmentToConstantError, got %v", source, err)
		}
		expectNumber(t, mustLookup(t, interp, "k"), 1)
	}
}

func TestUndefinedVariable(t *testing.T) {
	interp := New()
	_, err := runSource(t, interp, "let a = 1\n  ghost")
	var undef *runtime.UndefinedVariableError
	if !errors.As(err, &undef) || undef.Name != "ghost" {
		t.Fatalf("expected UndefinedVariableError, got %v", err)
	}
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Pos.Line != 2 || rtErr.Pos.Column != 3 {
		t.Fatalf("expected runtime error at 2:3, got %#v", err)
	}
	if err.Error() != "runtime error at 2:3: ghost is not defined" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	for _, source := range []string{"missing = 1", "missing += 1", "missing++", "let x = missing", "missing()"} {
		if _, err := runSource(t, New(), source); !errors.As(err, &undef) {
			t.Fatalf("%s: expected UndefinedVariableError, got %v", source, err)
		}
	}
}

func TestMalformedNumericLiteral(t *testing.T) {
	interp := New()
	_, err := runSource(t, interp, "let n = 1e")
	var malformed *runtime.MalformedNumericLiteralError
	if !errors.As(err, &malformed) || malformed.Text != "1e" {
		t.Fatalf("expected MalformedNumericLiteralError, got %v", err)
	}
	if _, lookupErr := interp.Lookup("n"); lookupErr == nil {
		t.Fatalf("expected n to stay unbound")
	}
}

func TestRecursionLimit(t *testing.T) {
	interp := NewWithOptions(Options{MaxDepth: 16})
	_, err := runSource(t, interp, "function loop() { return loop() }\nloop()")
	var limit *runtime.RecursionLimitError
	if !errors.As(err, &limit) || limit.Limit != 16 {
		t.Fatalf("expected RecursionLimitError, got %v", err)
	}
}

func TestDefaultRecursionLimit(t *testing.T) {
	_, err := runSource(t, New(), "function loop() { return loop() }\nloop()")
	var limit *runtime.RecursionLimitError
	if !errors.As(err, &limit) || limit.Limit != DefaultMaxDepth {
		t.Fatalf("expected RecursionLimitError at %d, got %v", DefaultMaxDepth, err)
	}
}

func TestFailingStatementIsAbandoned(t *testing.T) {
	interp := New()
	val, err := runSource(t, interp, "const a = 5; a++; let b = 7; b")
	var constErr *runtime.AssignmentToConstantError
	if !errors.As(err, &constErr) || constErr.Name != "a" {
		t.Fatalf("expected AssignmentToConstantError, got %v", err)
	}
	expectNumber(t, val, 7)
	expectNumber(t, mustLookup(t, interp, "a"), 5)
	expectNumber(t, mustLookup(t, interp, "b"), 7)
}

func TestErrorsAreJoined(t *testing.T) {
	interp := New()
	val, err := runSource(t, interp, "let a = 1\nghost\nlet b = 2\nconst c = 3\nc++\nb")
	expectNumber(t, val, 2)

	var undef *runtime.UndefinedVariableError
	if !errors.As(err, &undef) {
		t.Fatalf("expected joined UndefinedVariableError, got %v", err)
	}
	var constErr *runtime.AssignmentToConstantError
	if !errors.As(err, &constErr) {
		t.Fatalf("expected joined AssignmentToConstantError, got %v", err)
	}
	expectNumber(t, mustLookup(t, interp, "b"), 2)
	expectNumber(t, mustLookup(t, interp, "c"), 3)
}

func TestFailingStatementIsSkippedWhole(t *testing.T) {
	interp := New()
	_, err := runSource(t, interp, "let f = function() {\n  return missing\n}\nlet r = f(); let after = 1")
	var undef *runtime.UndefinedVariableError
	if !errors.As(err, &undef) {
		t.Fatalf("expected UndefinedVariableError, got %v", err)
	}
	if _, lookupErr := interp.Lookup("r"); lookupErr == nil {
		t.Fatalf("expected r to stay unbound")
	}
	expectNumber(t, mustLookup(t, interp, "after"), 1)
}

func TestStopOnError(t *testing.T) {
	interp := NewWithOptions(Options{StopOnError: true})
	_, err := runSource(t, interp, "let a = 1\nghost\nlet b = 2")
	var undef *runtime.UndefinedVariableError
	if !errors.As(err, &undef) {
		t.Fatalf("expected UndefinedVariableError, got %v", err)
	}
	expectNumber(t, mustLookup(t, interp, "a"), 1)
	if _, err := interp.Lookup("b"); err == nil {
		t.Fatalf("expected evaluation to stop before b")
	}
}

func TestSyntaxErrors(t *testing.T) {
	cases := []string{
		"return 5",
		"const a",
		"let {a} = b",
		"let [a] = b",
		"let 5 = 1",
		"let a 5",
		"function f(a b) {}",
		"function f(a {}",
		"function f() return 1",
		"function f() { return 1",
		"f(1",
		"f(1,,2)",
		"f(,1)",
		"++5",
	}
	for _, source := range cases {
		interp := New()
		mustRun(t, interp, "function f() {}")
		_, err := runSource(t, interp, source)
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Fatalf("%q: expected SyntaxError, got %v", source, err)
		}
	}
}

func TestUnsupportedOperations(t *testing.T) {
	cases := []struct {
		source string
		op     string
	}{
		{"let n = 1\nn()", "call"},
		{"function f() {}\nf++", "increment"},
		{"function f() {}\nf += 1", "+="},
		{"let s = \"abc\"\ns.length = 1", "set property length"},
		{"function f() {}\nf.name = \"g\"", "set property name"},
		{"let s = \"abc\"\ns.length += 10", "+= on property length"},
		{"let s = \"abc\"\ns.length++", "++ on property length"},
	}
	for _, tc := range cases {
		_, err := runSource(t, New(), tc.source)
		var unsupported *runtime.UnsupportedOperationError
		if !errors.As(err, &unsupported) || unsupported.Op != tc.op {
			t.Fatalf("%q: expected unsupported %s, got %v", tc.source, tc.op, err)
		}
	}
}
