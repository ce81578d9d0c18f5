// Package input maps key presses and keypad buttons onto calculator engine
// inputs. It is the dispatch table between the terminal front end and the
// engine, so the engine itself never sees terminal events.
package input

import (
	"strconv"
	"strings"

	"bwcalc/internal/calc"
)

// named holds the multi-character key names, as reported by bubbletea's
// KeyMsg.String(), and the aliases accepted on the command line.
var named = map[string]calc.Input{
	"enter":     {Kind: calc.KindEquals},
	"=":         {Kind: calc.KindEquals},
	"backspace": {Kind: calc.KindBackspace},
	"esc":       {Kind: calc.KindClear},
	"escape":    {Kind: calc.KindClear},
	"delete":    {Kind: calc.KindClear},
	"c":         {Kind: calc.KindClear},
	"C":         {Kind: calc.KindClear},
	"%":         {Kind: calc.KindPercent},
	".":         {Kind: calc.KindDecimal},
	",":         {Kind: calc.KindDecimal},
	"n":         {Kind: calc.KindNegate},
	"_":         {Kind: calc.KindNegate},
	"±":         {Kind: calc.KindNegate},
	"−":         calc.OperatorInput(calc.OpSub),
	"x":         calc.OperatorInput(calc.OpMul),
	"×":         calc.OperatorInput(calc.OpMul),
	"÷":         calc.OperatorInput(calc.OpDiv),
}

// FromKey returns the engine input for a key name. Unrecognized keys report
// false and must be ignored by the caller.
func FromKey(name string) (calc.Input, bool) {
	if len(name) == 1 && name[0] >= '0' && name[0] <= '9' {
		return calc.DigitInput(name[0]), true
	}
	if op, ok := calc.ParseOperator(name); ok {
		return calc.OperatorInput(op), true
	}
	in, ok := named[name]
	return in, ok
}

// sequenceAliases are the whole-word tokens accepted by ParseSequence in
// addition to FromKey names.
var sequenceAliases = map[string]string{
	"equals":  "enter",
	"bksp":    "backspace",
	"clear":   "esc",
	"neg":     "n",
	"negate":  "n",
	"percent": "%",
}

// SequenceError reports a token ParseSequence could not map.
type SequenceError struct {
	Token string
}

func (e *SequenceError) Error() string {
	return "unrecognized key " + strconv.Quote(e.Token)
}

// ParseSequence turns command-line arguments into inputs. Each argument is
// either a key name (enter, backspace, esc, neg, ...) or a run of single
// character keys such as "12+3=". Whitespace is ignored.
func ParseSequence(args []string) ([]calc.Input, error) {
	var out []calc.Input
	for _, arg := range args {
		for _, tok := range strings.Fields(arg) {
			key := tok
			if alias, ok := sequenceAliases[strings.ToLower(tok)]; ok {
				key = alias
			}
			if in, ok := namedWord(strings.ToLower(key)); ok {
				out = append(out, in)
				continue
			}
			for _, r := range tok {
				in, ok := FromKey(string(r))
				if !ok {
					return nil, &SequenceError{Token: string(r)}
				}
				out = append(out, in)
			}
		}
	}
	return out, nil
}

// namedWord matches only multi-character key names, so "c" inside "12c" is
// still read rune by rune.
func namedWord(key string) (calc.Input, bool) {
	if len([]rune(key)) < 2 {
		return calc.Input{}, false
	}
	in, ok := named[key]
	return in, ok
}
