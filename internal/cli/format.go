// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney formats a dollar value with two decimals and comma separators.
// e.g., 1779.97 -> "$1,779.97". Values too large for int64 cents skip the
// separators.
func FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	if v >= 1e16 || math.IsNaN(v) {
		return fmt.Sprintf("%s$%.2f", sign, v)
	}
	cents := int64(math.Round(v * 100))
	return fmt.Sprintf("%s$%s.%02d", sign, FormatNumber(cents/100), cents%100)
}

// FormatRate formats a per-unit rate, trimming trailing zeros past cents.
// e.g., 0.56 -> "$0.56", 88 -> "$88.00", 0.125 -> "$0.125"
func FormatRate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i < 0 {
		s += ".00"
	} else if len(s)-i-1 < 2 {
		s += strings.Repeat("0", 2-(len(s)-i-1))
	}
	return "$" + s
}

// FormatFactor formats a multiplier such as a penalty factor.
// e.g., 0.85 -> "x0.85", 1 -> "x1.00"
func FormatFactor(f float64) string {
	return fmt.Sprintf("x%.2f", f)
}

// FormatMiles formats a distance with up to one decimal.
func FormatMiles(miles float64) string {
	if miles == math.Trunc(miles) && math.Abs(miles) < 1e15 {
		return FormatNumber(int64(miles)) + " mi"
	}
	return fmt.Sprintf("%.1f mi", miles)
}

// FormatBound formats a tier or band bound, rendering +Inf as "∞".
func FormatBound(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
