package runtime

import "fmt"

// UndefinedVariableError is returned when a name is not bound anywhere in
// the scope chain.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("%s is not defined", e.Name)
}

// AssignmentToConstantError is returned when an immutable binding is mutated.
type AssignmentToConstantError struct {
	Name string
}

func (e *AssignmentToConstantError) Error() string {
	return fmt.Sprintf("assignment to constant variable '%s'", e.Name)
}

type HeapHandleNotFoundError struct {
	Handle Handle
}

func (e *HeapHandleNotFoundError) Error() string {
	return fmt.Sprintf("heap handle %s not found", e.Handle)
}

type MalformedNumericLiteralError struct {
	Text string
}

func (e *MalformedNumericLiteralError) Error() string {
	return fmt.Sprintf("malformed numeric literal %q", e.Text)
}

// RecursionLimitError is returned when nested evaluation exceeds the
// configured depth.
type RecursionLimitError struct {
	Limit int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("maximum evaluation depth of %d exceeded", e.Limit)
}

// UnsupportedOperationError is returned by the capability table for
// variants that do not implement an operation.
type UnsupportedOperationError struct {
	Op   string
	Kind Kind
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("operation %s is not supported on %s", e.Op, e.Kind)
}
