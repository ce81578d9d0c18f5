package input

import (
	"bwcalc/internal/calc"
	"bwcalc/internal/logging"

	"go.uber.org/zap"
)

// Dispatcher routes inputs to an engine through a table keyed by input kind.
type Dispatcher struct {
	engine *calc.Engine
	table  map[calc.Kind]func(calc.Input) calc.Display
	log    *zap.Logger
}

// NewDispatcher builds the dispatch table for engine.
func NewDispatcher(engine *calc.Engine) *Dispatcher {
	d := &Dispatcher{
		engine: engine,
		log:    logging.Get(logging.CategoryInput),
	}
	d.table = map[calc.Kind]func(calc.Input) calc.Display{
		calc.KindDigit:     func(in calc.Input) calc.Display { return engine.Digit(in.Digit) },
		calc.KindDecimal:   func(calc.Input) calc.Display { return engine.DecimalPoint() },
		calc.KindOperator:  func(in calc.Input) calc.Display { return engine.SetOperator(in.Operator) },
		calc.KindEquals:    func(calc.Input) calc.Display { return engine.Evaluate() },
		calc.KindClear:     func(calc.Input) calc.Display { return engine.Clear() },
		calc.KindBackspace: func(calc.Input) calc.Display { return engine.Backspace() },
		calc.KindNegate:    func(calc.Input) calc.Display { return engine.ToggleSign() },
		calc.KindPercent:   func(calc.Input) calc.Display { return engine.Percent() },
	}
	return d
}

// Engine returns the engine inputs are dispatched to.
func (d *Dispatcher) Engine() *calc.Engine {
	return d.engine
}

// Dispatch applies in and returns the resulting display.
func (d *Dispatcher) Dispatch(in calc.Input) calc.Display {
	fn, ok := d.table[in.Kind]
	if !ok {
		d.log.Debug("no handler for input", zap.Stringer("kind", in.Kind))
		return d.engine.Display()
	}

	out := fn(in)
	if out.Err != nil {
		logging.Audit(logging.AuditErrorOutcome,
			zap.Stringer("input", in),
			zap.Error(out.Err))
		return out
	}
	logging.Audit(logging.AuditInputAccepted,
		zap.Stringer("input", in),
		zap.String("display", out.Value))
	return out
}

// Key dispatches the input for a key name. Unknown keys are ignored and
// reported with ok == false.
func (d *Dispatcher) Key(name string) (calc.Display, bool) {
	in, ok := FromKey(name)
	if !ok {
		d.log.Debug("ignoring key", zap.String("key", name))
		logging.Audit(logging.AuditInputIgnored, zap.String("key", name))
		return d.engine.Display(), false
	}
	return d.Dispatch(in), true
}

// Run dispatches every input in order and returns the display after each one.
func (d *Dispatcher) Run(inputs []calc.Input) []calc.Display {
	out := make([]calc.Display, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, d.Dispatch(in))
	}
	return out
}
