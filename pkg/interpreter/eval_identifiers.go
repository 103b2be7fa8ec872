package interpreter

import (
	"log/slog"

	"github.com/MMinusOne/endium/pkg/runtime"
	"github.com/MMinusOne/endium/pkg/token"
)

var compoundOps = map[token.Kind]runtime.AssignOp{
	token.PlusAssign:     runtime.AssignAdd,
	token.MinusAssign:    runtime.AssignSubtract,
	token.MultiplyAssign: runtime.AssignMultiply,
	token.DivideAssign:   runtime.AssignDivide,
	token.ModuloAssign:   runtime.AssignModulo,
	token.ExponentAssign: runtime.AssignExponent,
}

func (ev *evaluator) identifierStatement() error {
	name := ev.next().Text
	ev.skipComments()
	next := ev.peek()

	if op, ok := compoundOps[next.Kind]; ok {
		ev.pos++
		operand, err := ev.nested(ev.collectValueTokens())
		if err != nil {
			return err
		}
		operand, err = ev.interp.heap.Deref(operand)
		if err != nil {
			return err
		}
		_, updated, err := ev.update(name, string(op), func(v runtime.Value) (runtime.Value, error) {
			return runtime.CompoundAssign(v, op, operand)
		})
		if err != nil {
			return err
		}
		ev.result = updated
		return nil
	}

	switch next.Kind {
	case token.Increment, token.Decrement:
		ev.pos++
		delta, label := 1.0, "++"
		if next.Kind == token.Decrement {
			delta, label = -1, "--"
		}
		previous, _, err := ev.update(name, label, func(v runtime.Value) (runtime.Value, error) {
			return runtime.Increment(v, delta)
		})
		if err != nil {
			return err
		}
		ev.result = runtime.NumberValue{Val: runtime.ToNumber(previous)}
		return nil
	case token.Assign:
		ev.pos++
		return ev.assign(name)
	case token.Dot, token.OptionalChaining:
		root, err := ev.scope.Get(name)
		if err != nil {
			return err
		}
		return ev.propertyAccess(root)
	case token.LeftParen:
		callee, err := ev.scope.Get(name)
		if err != nil {
			return err
		}
		return ev.calls(callee)
	default:
		val, err := ev.scope.Get(name)
		if err != nil {
			return err
		}
		ev.result = val
		return nil
	}
}

// prefixUpdate handles `++x` and `--x`; the result is the updated value.
func (ev *evaluator) prefixUpdate() error {
	op := ev.next()
	ev.skipComments()
	target := ev.peek()
	if target.Kind != token.Identifier {
		return syntaxErrorf(target.Pos, "invalid %s operand", op.Kind)
	}
	ev.pos++
	delta, label := 1.0, "++"
	if op.Kind == token.Decrement {
		delta, label = -1, "--"
	}
	_, updated, err := ev.update(target.Text, label, func(v runtime.Value) (runtime.Value, error) {
		return runtime.Increment(v, delta)
	})
	if err != nil {
		return err
	}
	ev.result = updated
	return nil
}

func (ev *evaluator) assign(name string) error {
	b, err := ev.scope.Lookup(name)
	if err != nil {
		return err
	}
	if !b.Mutable {
		return &runtime.AssignmentToConstantError{Name: name}
	}
	val, err := ev.nested(ev.collectValueTokens())
	if err != nil {
		return err
	}
	bound := ev.interp.bindable(val)
	if err := b.Set(bound); err != nil {
		return err
	}
	ev.interp.logger.Debug("mutate", slog.String("name", name), slog.String("op", "="))
	ev.result = bound
	return nil
}

// update applies a capability to the value bound to name and stores the
// outcome. When the binding holds a pointer and the outcome is itself a
// reference value, the heap slot is replaced so every alias observes it;
// a primitive outcome rebinds only this name. It returns the dereferenced
// previous value and the new bound value.
func (ev *evaluator) update(name, op string, apply func(runtime.Value) (runtime.Value, error)) (runtime.Value, runtime.Value, error) {
	b, err := ev.scope.Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	if !b.Mutable {
		return nil, nil, &runtime.AssignmentToConstantError{Name: name}
	}
	heap := ev.interp.heap
	current, err := heap.Deref(b.Value)
	if err != nil {
		return nil, nil, err
	}
	previous := current
	if str, ok := current.(*runtime.StringValue); ok {
		// In-place appends mutate the string; keep the old text.
		previous = runtime.NewString(str.Val())
	}
	next, err := apply(current)
	if err != nil {
		return nil, nil, err
	}

	if ptr, ok := b.Value.(runtime.PointerValue); ok && runtime.IsReference(next) {
		if err := heap.Store(ptr.Handle, next); err != nil {
			return nil, nil, err
		}
		ev.interp.logger.Debug("mutate",
			slog.String("name", name),
			slog.String("op", op),
			slog.String("handle", string(ptr.Handle)))
		return previous, ptr, nil
	}
	bound := ev.interp.bindable(next)
	if err := b.Set(bound); err != nil {
		return nil, nil, err
	}
	ev.interp.logger.Debug("mutate",
		slog.String("name", name),
		slog.String("op", op),
		slog.String("kind", bound.Kind().String()))
	return previous, bound, nil
}

// propertyAccess reads `.a.b` / `?.a` chains, assigns through them with
// `=`, or calls the resolved value. Compound updates of a property are
// rejected.
func (ev *evaluator) propertyAccess(root runtime.Value) error {
	path := runtime.NewPropertyPath()
	for {
		ev.skipComments()
		sep := ev.peek()
		if sep.Kind != token.Dot && sep.Kind != token.OptionalChaining {
			break
		}
		ev.pos++
		ev.skipComments()
		segment := ev.peek()
		if segment.Kind != token.Identifier {
			return syntaxErrorf(segment.Pos, "expected property name after '.'")
		}
		ev.pos++
		path.Add(segment.Text)
	}

	next := ev.peek()
	if next.Kind == token.Assign {
		ev.pos++
		return ev.assignProperty(root, path)
	}
	val, err := path.Resolve(root, ev.interp.heap)
	if err != nil {
		return err
	}
	if op, ok := propertyUpdateOp(next.Kind); ok {
		val, err = ev.interp.heap.Deref(val)
		if err != nil {
			return err
		}
		return &runtime.UnsupportedOperationError{Op: op + " on property " + path.String(), Kind: val.Kind()}
	}
	if next.Kind == token.LeftParen {
		return ev.calls(val)
	}
	ev.result = val
	return nil
}

func (ev *evaluator) assignProperty(root runtime.Value, path *runtime.PropertyPath) error {
	segments := path.Segments()
	last := segments[len(segments)-1]
	holder, err := runtime.NewPropertyPath(segments[:len(segments)-1]...).Resolve(root, ev.interp.heap)
	if err != nil {
		return err
	}
	holder, err = ev.interp.heap.Deref(holder)
	if err != nil {
		return err
	}
	val, err := ev.nested(ev.collectValueTokens())
	if err != nil {
		return err
	}
	bound := ev.interp.bindable(val)
	if err := runtime.SetProperty(holder, last, bound); err != nil {
		return err
	}
	ev.interp.logger.Debug("mutate", slog.String("property", path.String()), slog.String("op", "="))
	ev.result = bound
	return nil
}

func propertyUpdateOp(kind token.Kind) (string, bool) {
	if op, ok := compoundOps[kind]; ok {
		return string(op), true
	}
	switch kind {
	case token.Increment:
		return "++", true
	case token.Decrement:
		return "--", true
	}
	return "", false
}

// calls invokes callee once per consecutive argument list, so `f()()`
// calls the function f returns.
func (ev *evaluator) calls(callee runtime.Value) error {
	for {
		ev.skipComments()
		if ev.peek().Kind != token.LeftParen {
			break
		}
		open := ev.next()
		args, err := ev.arguments(open)
		if err != nil {
			return err
		}
		target, err := ev.interp.heap.Deref(callee)
		if err != nil {
			return err
		}
		fn, ok := target.(*runtime.FunctionValue)
		if !ok {
			return &runtime.UnsupportedOperationError{Op: "call", Kind: target.Kind()}
		}
		result, err := ev.interp.invokeFunction(fn, args, ev.depth)
		if err != nil {
			return err
		}
		callee = result
	}
	ev.result = callee
	return nil
}

// arguments evaluates the comma-separated spans up to the `)` matching open.
func (ev *evaluator) arguments(open token.Token) ([]runtime.Value, error) {
	var args []runtime.Value
	depth := 0
	start := ev.pos
	for {
		tok := ev.peek()
		switch tok.Kind {
		case token.EOF:
			return nil, syntaxErrorf(open.Pos, "unterminated argument list")
		case token.LeftParen, token.LeftBrace, token.LeftBracket:
			depth++
		case token.RightBrace, token.RightBracket:
			if depth > 0 {
				depth--
			}
		case token.RightParen, token.Comma:
			if tok.Kind == token.RightParen && depth > 0 {
				depth--
				break
			}
			if depth > 0 {
				break
			}
			span := ev.tokens[start:ev.pos]
			if !hasContent(span) && tok.Kind == token.Comma {
				return nil, syntaxErrorf(tok.Pos, "missing argument before ','")
			}
			ev.pos++
			if hasContent(span) {
				val, err := ev.nested(span)
				if err != nil {
					return nil, err
				}
				args = append(args, val)
			}
			if tok.Kind == token.RightParen {
				return args, nil
			}
			start = ev.pos
			continue
		}
		ev.pos++
	}
}

func hasContent(span []token.Token) bool {
	for _, tok := range span {
		if tok.Kind != token.Newline && !tok.IsTrivia() {
			return true
		}
	}
	return false
}
