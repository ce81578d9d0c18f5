package calc

// Operator is one of the four binary operators, or OpNone.
type Operator byte

const (
	OpNone Operator = 0
	OpAdd  Operator = '+'
	OpSub  Operator = '-'
	OpMul  Operator = '*'
	OpDiv  Operator = '/'
)

// ParseOperator maps an operator character to an Operator.
// Returns OpNone, false for anything that is not + - * /.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*":
		return OpMul, true
	case "/":
		return OpDiv, true
	}
	return OpNone, false
}

// Valid reports whether op is one of the four binary operators.
func (op Operator) Valid() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// String returns the ASCII form used on the keyboard.
func (op Operator) String() string {
	if !op.Valid() {
		return ""
	}
	return string(rune(op))
}

// Symbol returns the typographic symbol shown on the history line and keypad.
func (op Operator) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "−"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	}
	return ""
}

// apply computes a op b. Division by zero is reported as ErrDivideByZero
// instead of producing an infinity.
func (op Operator) apply(a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	}
	return 0, ErrUnknownOperator
}
