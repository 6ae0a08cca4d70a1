package natural

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperand is matched (via errors.Is) by every InvalidOperandError.
	ErrInvalidOperand = errors.New("invalid operand")
	// ErrUnderflow is matched (via errors.Is) by every UnderflowError.
	ErrUnderflow = errors.New("natural underflow")
)

// InvalidOperandError reports an input that cannot be represented as a
// Natural: a negative value or text that does not parse as an integer.
type InvalidOperandError struct {
	// Value is the offending input in textual form.
	Value string
	// Reason explains why the value was rejected.
	Reason string
}

// Error returns a formatted message describing the rejected operand.
func (e InvalidOperandError) Error() string {
	return fmt.Sprintf("invalid operand %q: %s", e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidOperand.
func (e InvalidOperandError) Is(target error) bool { return target == ErrInvalidOperand }

// UnderflowError reports a subtraction whose result would be negative.
type UnderflowError struct {
	Minuend    string
	Subtrahend string
}

// Error returns a formatted message describing the underflow.
func (e UnderflowError) Error() string {
	return fmt.Sprintf("natural underflow: %s - %s is negative", e.Minuend, e.Subtrahend)
}

// Is reports whether target is ErrUnderflow.
func (e UnderflowError) Is(target error) bool { return target == ErrUnderflow }
