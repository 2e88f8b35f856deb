package reimburse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFinite reports a total that overflowed to an infinity or NaN.
var ErrNotFinite = errors.New("total is not a finite number")

// Round rounds a float total to cents.
//
// The rounding is done on the exact binary value with ties to even, so 2.675
// (stored as 2.67499...) becomes 2.67. decimal.NewFromFloat would first
// shorten the float to "2.675" and round that up instead.
func Round(total float64) (decimal.Decimal, error) {
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return decimal.Decimal{}, ErrNotFinite
	}
	return decimal.NewFromString(strconv.FormatFloat(total, 'f', 2, 64))
}

// Format selects how an amount is printed.
type Format string

const (
	// FormatPlain prints the shortest form with at least one fractional
	// digit: 741.2, 1200.0, 1779.97.
	FormatPlain Format = "plain"
	// FormatFixed always prints two fractional digits: 741.20.
	FormatFixed Format = "fixed"
)

// ParseFormat resolves an output format name; empty means FormatPlain.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPlain:
		return FormatPlain, nil
	case FormatFixed:
		return FormatFixed, nil
	}
	return "", fmt.Errorf("unknown output format %q (want %s or %s)", s, FormatPlain, FormatFixed)
}

// FormatAmount renders an amount in the given format.
func FormatAmount(amount decimal.Decimal, f Format) string {
	if f == FormatFixed {
		return amount.StringFixed(2)
	}
	s := amount.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
