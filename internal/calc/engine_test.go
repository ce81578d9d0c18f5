package calc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// press feeds a compact key script to e and returns the last display.
// Digits, '.', + - * /, '=' map directly; 'c' is clear, '<' backspace,
// 'n' sign toggle and '%' percent.
func press(t *testing.T, e *Engine, keys string) Display {
	t.Helper()
	d := e.Display()
	for i := 0; i < len(keys); i++ {
		k := keys[i]
		switch {
		case k >= '0' && k <= '9':
			d = e.Digit(k)
		case k == '.':
			d = e.DecimalPoint()
		case k == '=':
			d = e.Evaluate()
		case k == 'c':
			d = e.Clear()
		case k == '<':
			d = e.Backspace()
		case k == 'n':
			d = e.ToggleSign()
		case k == '%':
			d = e.Percent()
		default:
			op, ok := ParseOperator(string(k))
			require.True(t, ok, "bad key %q in script", k)
			d = e.SetOperator(op)
		}
	}
	return d
}

func TestEngine_DefaultState(t *testing.T) {
	e := New(Options{})
	if diff := cmp.Diff(State{Current: "0"}, e.State()); diff != "" {
		t.Errorf("default state mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Display{Value: "0"}, e.Display())
}

func TestEngine_Sequences(t *testing.T) {
	tests := []struct {
		name    string
		keys    string
		want    string
		history string
	}{
		{"digits concatenate", "123", "123", ""},
		{"leading zero suppressed", "0007", "7", ""},
		{"duplicate decimal point ignored", "1..5", "1.5", ""},
		{"decimal on fresh entry", ".5", "0.5", ""},
		{"chaining evaluates pending operator", "2+3*4=", "20", ""},
		{"chain shows intermediate result", "2+3*", "5", "5 ×"},
		{"operator pending history", "12+", "12", "12 +"},
		{"operator replaced before operand", "2+*3=", "6", ""},
		{"equals reuses displayed operand", "5+=", "10", ""},
		{"repeated equals", "5+3==", "11", ""},
		{"repeated equals three times", "5+3===", "14", ""},
		{"repeated equals on new entry", "5+3=2=", "5", ""},
		{"repeated subtraction", "10-2==", "6", ""},
		{"equals without operator is a no-op", "42=", "42", ""},
		{"percent", "50%", "0.5", ""},
		{"percent of negative", "5n%", "-0.05", ""},
		{"toggle sign", "7n", "-7", ""},
		{"toggle sign twice", "7nn", "7", ""},
		{"toggle sign on zero is no-op", "n", "0", ""},
		{"backspace sign and digit collapses", "7n<", "0", ""},
		{"backspace one char", "123<", "12", ""},
		{"backspace decimal", "1.5<<", "1", ""},
		{"backspace negative zero collapses", "0.5n<<", "0", ""},
		{"backspace after evaluate resets", "2+3=<", "0", ""},
		{"digit after evaluate starts fresh", "2+3=7", "7", ""},
		{"decimal after evaluate starts fresh", "2+3=.", "0.", ""},
		{"clear resets", "12+3c", "0", ""},
		{"negative operand", "5n*3=", "-15", ""},
		{"one third", "1/3=", "0.333333333333", ""},
		{"float noise hidden", ".1+.2=", "0.3", ""},
		{"decimal operand", "1.5*2=", "3", ""},
		{"result feeds next operator", "2+3=*4=", "20", ""},
		{"large product uses exponent", "99999999*99999999*99999999=", "9.9999997e+23", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(Options{})
			d := press(t, e, tt.keys)
			require.NoError(t, d.Err)
			assert.Equal(t, tt.want, d.Value)
			assert.Equal(t, tt.history, d.History)
		})
	}
}

func TestEngine_DivideByZero(t *testing.T) {
	e := New(Options{})
	d := press(t, e, "5/0=")

	require.Error(t, d.Err)
	assert.True(t, errors.Is(d.Err, ErrDivideByZero))
	assert.True(t, d.IsError())
	assert.Equal(t, DefaultErrorToken, d.Value)
	if diff := cmp.Diff(defaultState(), e.State()); diff != "" {
		t.Errorf("state not reset after error (-want +got):\n%s", diff)
	}

	// The engine keeps working after the error outcome.
	d = press(t, e, "2+2=")
	require.NoError(t, d.Err)
	assert.Equal(t, "4", d.Value)
}

func TestEngine_DivideByZeroWhileChaining(t *testing.T) {
	e := New(Options{})
	d := press(t, e, "5/0+")

	assert.ErrorIs(t, d.Err, ErrDivideByZero)
	assert.Equal(t, OpNone, e.State().Operator)
	assert.Equal(t, "0", e.State().Current)
}

func TestEngine_Overflow(t *testing.T) {
	e := New(Options{})
	e.state = State{Current: "1e300", Previous: 1e300, Operator: OpMul}

	d := e.Evaluate()
	assert.ErrorIs(t, d.Err, ErrNonFinite)
	assert.Equal(t, "Error", d.Value)
	assert.Equal(t, defaultState(), e.State())
}

func TestEngine_RepeatedEqualsRemembersOperand(t *testing.T) {
	e := New(Options{})
	press(t, e, "5+3=")

	want := State{
		Current:      "8",
		Overwrite:    true,
		LastOperator: OpAdd,
		LastOperand:  3,
	}
	if diff := cmp.Diff(want, e.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_LengthCap(t *testing.T) {
	e := New(Options{})
	d := press(t, e, "12345678901234567890")
	assert.Equal(t, "1234567890123456", d.Value)
	assert.Len(t, d.Value, DefaultMaxLength)

	d = press(t, e, ".")
	assert.Equal(t, "1234567890123456", d.Value, "decimal point past the cap is ignored")

	d = press(t, e, "n")
	assert.Equal(t, "-1234567890123456", d.Value, "sign does not count toward the cap")

	d = press(t, e, "9")
	assert.Equal(t, "-1234567890123456", d.Value)
}

func TestEngine_CustomOptions(t *testing.T) {
	e := New(Options{MaxLength: 4, Precision: 4, ErrorToken: "E"})

	assert.Equal(t, "1234", press(t, e, "123456").Value)
	press(t, e, "c")
	assert.Equal(t, "0.3333", press(t, e, "1/3=").Value)
	assert.Equal(t, "E", press(t, e, "1/0=").Value)
}

func TestEngine_InvalidInputIgnored(t *testing.T) {
	e := New(Options{})
	press(t, e, "12")
	before := e.State()

	e.Digit('x')
	e.SetOperator(Operator('^'))
	e.SetOperator(OpNone)
	e.Apply(Input{Kind: Kind(99)})

	assert.Equal(t, before, e.State())
}

func TestEngine_PercentIgnoresUnparsable(t *testing.T) {
	e := New(Options{})
	e.state.Current = "-"
	d := e.Percent()
	assert.Equal(t, "-", d.Value)
}

func TestEngine_PercentExponentSetsOverwrite(t *testing.T) {
	e := New(Options{})
	e.state.Current = "1e-20"

	d := e.Percent()
	assert.Equal(t, "1e-22", d.Value)
	assert.True(t, e.State().Overwrite)

	d = e.Digit('4')
	assert.Equal(t, "4", d.Value)
}

func TestEngine_PercentOverCapSetsOverwrite(t *testing.T) {
	e := New(Options{})
	press(t, e, "0.0123456789012")
	require.Equal(t, "0.0123456789012", e.State().Current)

	d := e.Percent()
	assert.Equal(t, "0.000123456789012", d.Value)
	assert.True(t, e.State().Overwrite, "an entry longer than the cap cannot be extended")

	d = e.Digit('7')
	assert.Equal(t, "7", d.Value)
}

func TestEngine_PercentWithinCapStaysEditable(t *testing.T) {
	e := New(Options{})
	press(t, e, "50")

	d := e.Percent()
	assert.Equal(t, "0.5", d.Value)
	assert.False(t, e.State().Overwrite)

	d = e.Digit('5')
	assert.Equal(t, "0.55", d.Value)
}

func TestEditable(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want bool
	}{
		{"0.5", 16, true},
		{"1e-22", 16, false},
		{"123456789012345", 16, true},
		{"1234567890123456", 16, false},
		{"-123456789012345", 16, true},
		{"0.000123456789012", 16, false},
		{"12", 2, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, editable(tt.in, tt.max), tt.in)
	}
}

func TestEngine_Apply(t *testing.T) {
	e := New(Options{})
	inputs := []Input{
		DigitInput('9'),
		{Kind: KindDecimal},
		DigitInput('5'),
		OperatorInput(OpSub),
		DigitInput('2'),
		{Kind: KindNegate},
		{Kind: KindEquals},
	}

	var d Display
	for _, in := range inputs {
		d = e.Apply(in)
	}
	assert.Equal(t, "11.5", d.Value)

	d = e.Apply(Input{Kind: KindPercent})
	assert.Equal(t, "0.115", d.Value)
	d = e.Apply(Input{Kind: KindBackspace})
	assert.Equal(t, "0", d.Value)
	d = e.Apply(Input{Kind: KindClear})
	assert.Equal(t, "0", d.Value)
}

func TestInput_String(t *testing.T) {
	assert.Equal(t, "7", DigitInput('7').String())
	assert.Equal(t, "*", OperatorInput(OpMul).String())
	assert.Equal(t, "equals", Input{Kind: KindEquals}.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestOperator(t *testing.T) {
	for _, s := range []string{"+", "-", "*", "/"} {
		op, ok := ParseOperator(s)
		require.True(t, ok, s)
		assert.True(t, op.Valid())
		assert.Equal(t, s, op.String())
	}

	_, ok := ParseOperator("^")
	assert.False(t, ok)
	assert.Equal(t, "÷", OpDiv.Symbol())
	assert.Equal(t, "−", OpSub.Symbol())
	assert.Equal(t, "", OpNone.Symbol())
}
