package units

import (
	"math"
	"strconv"
	"strings"
)

// Round applies the display precision policy. Values carrying three or more
// decimal digits are rounded to two, halves away from zero. Integral values
// and values already at two or fewer decimals come back untouched so that no
// decimal noise is introduced. NaN and the infinities pass through.
func Round(v float64) float64 {
	if v == math.Trunc(v) {
		return v
	}
	if decimalDigits(v) < 3 {
		return v
	}
	return math.Round(v*100) / 100
}

// RoundString parses s as a number and rounds the result. Input that does
// not parse yields NaN, which callers must check before rendering.
func RoundString(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return Round(v)
}

// Format renders an already rounded value in its shortest decimal form,
// avoiding the trailing zero padding of a fixed precision format.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// decimalDigits counts the digits after the point in the shortest decimal
// representation of v.
func decimalDigits(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
