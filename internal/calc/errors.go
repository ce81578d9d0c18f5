package calc

import "errors"

var (
	// ErrDivideByZero is returned when the right operand of a division is zero.
	ErrDivideByZero = errors.New("division by zero")

	// ErrNonFinite is returned when a result overflows to an infinity or is NaN.
	ErrNonFinite = errors.New("result is not a finite number")

	// ErrUnknownOperator is returned when evaluation meets an operator outside + - * /.
	ErrUnknownOperator = errors.New("unknown operator")
)
