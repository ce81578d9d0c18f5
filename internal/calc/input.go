package calc

import "fmt"

// Kind identifies one of the discrete input events the engine accepts.
type Kind int

const (
	KindDigit Kind = iota
	KindDecimal
	KindOperator
	KindEquals
	KindClear
	KindBackspace
	KindNegate
	KindPercent
)

var kindNames = [...]string{
	KindDigit:     "digit",
	KindDecimal:   "decimal",
	KindOperator:  "operator",
	KindEquals:    "equals",
	KindClear:     "clear",
	KindBackspace: "backspace",
	KindNegate:    "negate",
	KindPercent:   "percent",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Input is a single input event. Digit is set for KindDigit and Operator for
// KindOperator; both are ignored for the other kinds.
type Input struct {
	Kind     Kind
	Digit    byte
	Operator Operator
}

// DigitInput returns the input for pressing digit d ('0'-'9').
func DigitInput(d byte) Input {
	return Input{Kind: KindDigit, Digit: d}
}

// OperatorInput returns the input for pressing op.
func OperatorInput(op Operator) Input {
	return Input{Kind: KindOperator, Operator: op}
}

func (in Input) String() string {
	switch in.Kind {
	case KindDigit:
		return string(rune(in.Digit))
	case KindOperator:
		return in.Operator.String()
	}
	return in.Kind.String()
}
