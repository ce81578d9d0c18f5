package calc

import (
	"math"
	"strconv"
	"strings"
)

// DefaultPrecision is the number of significant digits shown for results.
const DefaultPrecision = 12

// plainLimit bounds the width of a positional rendering of an exponent-form
// value. Longer values keep the exponent.
const plainLimit = 16

// Format renders x with at most precision significant digits, without
// trailing zeros or a trailing decimal point. Values that %g would print with
// an exponent are rendered positionally when that fits in plainLimit
// characters. Non-finite values return ErrNonFinite.
func Format(x float64, precision int) (string, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "", ErrNonFinite
	}
	if precision <= 0 {
		precision = DefaultPrecision
	}
	if x == 0 {
		return "0", nil
	}

	s := strconv.FormatFloat(x, 'g', precision, 64)
	if !strings.ContainsAny(s, "eE") {
		return trimZeros(s), nil
	}

	// Round to the requested precision first so the positional form does
	// not resurrect digits the exponent form dropped.
	rounded, err := strconv.ParseFloat(s, 64)
	if err == nil {
		plain := trimZeros(strconv.FormatFloat(rounded, 'f', -1, 64))
		if len(plain) <= plainLimit {
			return plain, nil
		}
	}
	return s, nil
}

// trimZeros strips trailing fractional zeros and a dangling decimal point.
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// editable reports whether s can be extended with further digit input: it
// has no exponent and, sign excluded, is shorter than maxLength.
func editable(s string, maxLength int) bool {
	if strings.ContainsAny(s, "eE") {
		return false
	}
	return len(strings.TrimPrefix(s, "-")) < maxLength
}
