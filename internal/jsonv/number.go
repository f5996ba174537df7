package jsonv

import (
	"math"
	"strconv"
	"strings"
)

// Границы десятичной записи, как у Number.prototype.toString.
const (
	maxFixedExp = 21
	minFixedExp = -6
)

// canonicalNumber rewrites a validated JSON number literal the way
// JSON.stringify prints the double it denotes. ok is false when the literal
// overflows to an infinity.
func canonicalNumber(lit string) (string, bool) {
	// грамматика уже проверена, ошибкой может быть только ErrRange
	f, _ := strconv.ParseFloat(lit, 64)
	if math.IsInf(f, 0) {
		return "", false
	}
	return formatNumber(f), true
}

// formatNumber renders f with the shortest round-tripping digits: plain
// decimal notation for exponents in [-7, 21), scientific otherwise.
// Negative zero prints as "0".
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	var b strings.Builder
	if f < 0 {
		b.WriteByte('-')
		f = -f
	}

	mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	digits := strings.Replace(mant, ".", "", 1)
	e, _ := strconv.Atoi(exp)
	k, n := len(digits), e+1

	switch {
	case k <= n && n <= maxFixedExp:
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", n-k))
	case 0 < n && n <= maxFixedExp:
		b.WriteString(digits[:n])
		b.WriteByte('.')
		b.WriteString(digits[n:])
	case minFixedExp < n && n <= 0:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -n))
		b.WriteString(digits)
	default:
		b.WriteByte(digits[0])
		if k > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('e')
		if n-1 >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(n - 1))
	}
	return b.String()
}
