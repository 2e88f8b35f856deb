package reimburse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseError reports an argument that is not a valid number.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseTrip converts the three raw command-line values into a Trip.
// A fractional day count such as "3.7" is truncated toward zero.
func ParseTrip(days, miles, receipts string) (Trip, error) {
	d, err := parseDays(days)
	if err != nil {
		return Trip{}, err
	}
	m, err := parseAmount("miles", miles)
	if err != nil {
		return Trip{}, err
	}
	r, err := parseAmount("receipts", receipts)
	if err != nil {
		return Trip{}, err
	}
	return Trip{Days: d, Miles: m, Receipts: r}, nil
}

func parseDays(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Field: "days", Value: raw, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, &ParseError{Field: "days", Value: raw, Err: strconv.ErrRange}
	}
	return int(f), nil
}

func parseAmount(field, raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ParseError{Field: field, Value: raw, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseError{Field: field, Value: raw, Err: strconv.ErrSyntax}
	}
	return f, nil
}
