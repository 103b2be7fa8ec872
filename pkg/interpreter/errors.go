package interpreter

import (
	"fmt"

	"github.com/MMinusOne/endium/pkg/runtime"
	"github.com/MMinusOne/endium/pkg/token"
)

// SyntaxError reports a statement whose shape the evaluator cannot accept.
type SyntaxError struct {
	Message string
	Pos     token.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Message)
}

// RuntimeError attaches the position of the failing statement to an
// evaluation error.
type RuntimeError struct {
	Pos token.Position
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at %s: %v", e.Pos, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func syntaxErrorf(pos token.Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// wrapAt positions err unless it already carries a position.
func wrapAt(pos token.Position, err error) error {
	switch err.(type) {
	case *RuntimeError, *SyntaxError, returnSignal:
		return err
	}
	return &RuntimeError{Pos: pos, Err: err}
}

// returnSignal unwinds a function body to its caller.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return outside function"
}
