package interpreter

import (
	"io"
	"log/slog"

	"github.com/MMinusOne/endium/pkg/runtime"
	"github.com/MMinusOne/endium/pkg/token"
)

// DefaultMaxDepth bounds nested evaluation when Options.MaxDepth is unset.
const DefaultMaxDepth = 256

// Options tune an Interpreter.
type Options struct {
	// MaxDepth limits nested evaluations (value spans, arguments, template
	// expressions, function bodies).
	MaxDepth int
	// StopOnError ends the run at the first failing top-level statement.
	// By default the statement is abandoned and evaluation continues.
	StopOnError bool
	Logger      *slog.Logger
}

// Interpreter owns a heap and a global scope. Successive Run calls share
// both, so a REPL can feed one chunk at a time. An Interpreter is not safe
// for concurrent use; separate interpreters share nothing.
type Interpreter struct {
	global *runtime.Scope
	heap   *runtime.Heap
	opts   Options
	logger *slog.Logger
}

// New returns an interpreter with default options.
func New() *Interpreter {
	return NewWithOptions(Options{})
}

// NewWithOptions returns an interpreter with an empty global scope.
func NewWithOptions(opts Options) *Interpreter {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Interpreter{
		global: runtime.NewScope(nil),
		heap:   runtime.NewHeap(),
		opts:   opts,
		logger: logger,
	}
}

// GlobalScope returns the interpreter's global scope.
func (i *Interpreter) GlobalScope() *runtime.Scope {
	return i.global
}

// Heap returns the interpreter's heap.
func (i *Interpreter) Heap() *runtime.Heap {
	return i.heap
}

// Run evaluates tokens in the global scope and returns the last value,
// dereferenced. A failing top-level statement is abandoned at its
// terminator and the run continues; the collected errors are joined.
// With StopOnError the run ends at the first failure instead. Either way
// the effects of completed statements are kept.
func (i *Interpreter) Run(tokens []token.Token) (runtime.Value, error) {
	ev := i.newEvaluator(i.global, tokens, 0)
	ev.recover = !i.opts.StopOnError
	result, err := ev.run()
	if result == nil {
		return runtime.UndefinedValue{}, err
	}
	val, derefErr := i.heap.Deref(result)
	if derefErr != nil {
		return nil, derefErr
	}
	return val, err
}

// Lookup resolves a global name to its dereferenced value.
func (i *Interpreter) Lookup(name string) (runtime.Value, error) {
	val, err := i.global.Get(name)
	if err != nil {
		return nil, err
	}
	return i.heap.Deref(val)
}

// CallFunction invokes fn with args and returns its dereferenced result.
func (i *Interpreter) CallFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	result, err := i.invokeFunction(fn, args, 0)
	if err != nil {
		return nil, err
	}
	return i.heap.Deref(result)
}

func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value, depth int) (runtime.Value, error) {
	if depth+1 > i.opts.MaxDepth {
		return nil, &runtime.RecursionLimitError{Limit: i.opts.MaxDepth}
	}
	localScope := runtime.NewScope(fn.Closure)
	for idx, param := range fn.Params {
		var arg runtime.Value = runtime.UndefinedValue{}
		if idx < len(args) {
			arg = args[idx]
		}
		localScope.Declare(param, i.bindable(arg), true)
	}
	i.logger.Debug("call",
		slog.String("function", functionName(fn)),
		slog.Int("args", len(args)),
		slog.Int("depth", depth+1))

	ev := i.newEvaluator(localScope, fn.Body, depth+1)
	ev.inFunction = true
	if _, err := ev.run(); err != nil {
		if ret, ok := err.(returnSignal); ok {
			if ret.value == nil {
				return runtime.UndefinedValue{}, nil
			}
			return ret.value, nil
		}
		return nil, err
	}
	return runtime.UndefinedValue{}, nil
}

// bindable converts a value into the form stored in a binding: reference
// kinds move to the heap, pointers are copied so both names alias the slot.
func (i *Interpreter) bindable(v runtime.Value) runtime.Value {
	if v == nil {
		return runtime.UndefinedValue{}
	}
	if runtime.IsReference(v) {
		return i.heap.Allocate(v)
	}
	return v
}

func functionName(fn *runtime.FunctionValue) string {
	if fn.Name == "" {
		return "<anonymous>"
	}
	return fn.Name
}
