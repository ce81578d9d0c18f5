// Package calc implements the calculator engine: a two-operand input,
// operator and evaluate state machine that produces a display string after
// every input event.
//
// The engine is synchronous and not safe for concurrent use. It is owned by
// whatever composes the user interface and is mutated only through its
// methods.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultMaxLength caps the number of characters typed into an operand,
	// not counting a leading minus sign.
	DefaultMaxLength = 16

	// DefaultErrorToken is shown in place of a value after an error outcome.
	DefaultErrorToken = "Error"
)

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	MaxLength  int
	Precision  int
	ErrorToken string
	Logger     *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxLength <= 0 {
		o.MaxLength = DefaultMaxLength
	}
	if o.Precision <= 0 {
		o.Precision = DefaultPrecision
	}
	if o.ErrorToken == "" {
		o.ErrorToken = DefaultErrorToken
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// State is a snapshot of the engine's calculator state.
//
// Previous is meaningful only while Operator != OpNone, and LastOperand only
// while LastOperator != OpNone.
type State struct {
	Current      string
	Previous     float64
	Operator     Operator
	Overwrite    bool
	LastOperator Operator
	LastOperand  float64
}

func defaultState() State {
	return State{Current: "0"}
}

// Display is what the renderer shows after an input event.
type Display struct {
	// Value is the main line: the operand being typed, a result, or the
	// error token.
	Value string
	// History is the secondary line, "<previous> <symbol>" while an operator
	// is pending and empty otherwise.
	History string
	// Err is non-nil when the event produced the error outcome.
	Err error
}

// IsError reports whether d is an error display.
func (d Display) IsError() bool {
	return d.Err != nil
}

// Engine is the calculator state machine.
type Engine struct {
	opts  Options
	state State
	log   *zap.Logger
}

// New creates an engine in the default state.
func New(opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		opts:  opts,
		state: defaultState(),
		log:   opts.Logger,
	}
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// Display returns the display for the current state.
func (e *Engine) Display() Display {
	return Display{Value: e.state.Current, History: e.history()}
}

func (e *Engine) history() string {
	if e.state.Operator == OpNone {
		return ""
	}
	prev, err := Format(e.state.Previous, e.opts.Precision)
	if err != nil {
		return ""
	}
	return prev + " " + e.state.Operator.Symbol()
}

// Apply dispatches in to the matching operation.
func (e *Engine) Apply(in Input) Display {
	switch in.Kind {
	case KindDigit:
		return e.Digit(in.Digit)
	case KindDecimal:
		return e.DecimalPoint()
	case KindOperator:
		return e.SetOperator(in.Operator)
	case KindEquals:
		return e.Evaluate()
	case KindClear:
		return e.Clear()
	case KindBackspace:
		return e.Backspace()
	case KindNegate:
		return e.ToggleSign()
	case KindPercent:
		return e.Percent()
	}
	e.log.Debug("ignoring unknown input kind", zap.Stringer("kind", in.Kind))
	return e.Display()
}

// Digit appends d to the current operand, or replaces it in overwrite mode
// or when the operand is "0". Input past the length cap is ignored.
func (e *Engine) Digit(d byte) Display {
	if d < '0' || d > '9' {
		return e.Display()
	}
	s := &e.state
	switch {
	case s.Overwrite:
		s.Current = string(d)
		s.Overwrite = false
	case s.Current == "0":
		s.Current = string(d)
	case e.atCap():
		// silently ignored
	default:
		s.Current += string(d)
	}
	return e.Display()
}

// DecimalPoint adds a decimal point unless the operand already has one.
func (e *Engine) DecimalPoint() Display {
	s := &e.state
	switch {
	case s.Overwrite:
		s.Current = "0."
		s.Overwrite = false
	case strings.Contains(s.Current, "."), e.atCap():
	default:
		s.Current += "."
	}
	return e.Display()
}

func (e *Engine) atCap() bool {
	return len(strings.TrimPrefix(e.state.Current, "-")) >= e.opts.MaxLength
}

// SetOperator records op as the pending operator. When an operator is
// already pending and a new operand has been typed, the pending operation is
// evaluated first.
func (e *Engine) SetOperator(op Operator) Display {
	if !op.Valid() {
		return e.Display()
	}
	s := &e.state
	if s.Operator != OpNone && !s.Overwrite {
		if d := e.Evaluate(); d.Err != nil {
			return d
		}
	}
	s.Previous = e.operand()
	s.Operator = op
	s.Overwrite = true
	return e.Display()
}

// ToggleSign flips the leading minus sign. "0" is left alone.
func (e *Engine) ToggleSign() Display {
	s := &e.state
	if s.Current == "0" {
		return e.Display()
	}
	if rest, ok := strings.CutPrefix(s.Current, "-"); ok {
		s.Current = rest
	} else {
		s.Current = "-" + s.Current
	}
	return e.Display()
}

// Percent divides the operand by 100.
func (e *Engine) Percent() Display {
	v, err := strconv.ParseFloat(e.state.Current, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return e.Display()
	}
	out, err := Format(v/100, e.opts.Precision)
	if err != nil {
		return e.Display()
	}
	e.state.Current = out
	if !editable(out, e.opts.MaxLength) {
		e.state.Overwrite = true
	}
	return e.Display()
}

// Backspace removes the last character of the operand. A lone digit, a bare
// sign or "-0" collapse to "0", which then behaves like a fresh entry.
func (e *Engine) Backspace() Display {
	s := &e.state
	if s.Overwrite {
		s.Current = "0"
		return e.Display()
	}
	cur := s.Current[:len(s.Current)-1]
	switch cur {
	case "", "-", "-0":
		cur = "0"
	}
	s.Current = cur
	if cur == "0" {
		s.Overwrite = true
	}
	return e.Display()
}

// Clear resets the engine to its default state.
func (e *Engine) Clear() Display {
	e.state = defaultState()
	return e.Display()
}

// Evaluate applies the pending operator. With no operator pending it repeats
// the last operation against the current value; with neither it does nothing.
func (e *Engine) Evaluate() Display {
	s := &e.state
	switch {
	case s.Operator != OpNone:
		lhs, op, rhs := s.Previous, s.Operator, e.operand()
		result, err := op.apply(lhs, rhs)
		if err != nil {
			return e.fail(lhs, op, rhs, err)
		}
		s.LastOperator = op
		s.LastOperand = rhs
		return e.commit(lhs, op, rhs, result)

	case s.LastOperator != OpNone:
		lhs, op, rhs := e.operand(), s.LastOperator, s.LastOperand
		result, err := op.apply(lhs, rhs)
		if err != nil {
			return e.fail(lhs, op, rhs, err)
		}
		return e.commit(lhs, op, rhs, result)
	}
	return e.Display()
}

func (e *Engine) commit(lhs float64, op Operator, rhs, result float64) Display {
	out, err := Format(result, e.opts.Precision)
	if err != nil {
		return e.fail(lhs, op, rhs, err)
	}
	e.log.Debug("evaluated",
		zap.Float64("lhs", lhs),
		zap.Stringer("op", op),
		zap.Float64("rhs", rhs),
		zap.String("result", out))

	s := &e.state
	s.Current = out
	s.Previous = 0
	s.Operator = OpNone
	s.Overwrite = true
	return e.Display()
}

// fail produces the error outcome: the state returns to defaults and the
// display carries the error token.
func (e *Engine) fail(lhs float64, op Operator, rhs float64, err error) Display {
	err = fmt.Errorf("evaluate %g %s %g: %w", lhs, op, rhs, err)
	e.log.Info("error outcome", zap.Error(err))
	e.state = defaultState()
	return Display{Value: e.opts.ErrorToken, Err: err}
}

// operand returns the numeric value of the current entry. Partial entries
// such as "0." parse normally; anything unparsable counts as zero.
func (e *Engine) operand() float64 {
	v, err := strconv.ParseFloat(e.state.Current, 64)
	if err != nil {
		return 0
	}
	return v
}
