package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{741.2, "$741.20"},
		{1779.97, "$1,779.97"},
		{1234567.891, "$1,234,567.89"},
		{-12.5, "-$12.50"},
		{1e16, "$10000000000000000.00"},
		{-2.5e17, "-$250000000000000000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.in), "FormatMoney(%v)", tt.in)
	}
}

func TestFormatMoney_HugeValues(t *testing.T) {
	got := FormatMoney(1e300)
	assert.True(t, strings.HasPrefix(got, "$10000000000000000525"), got)
	assert.True(t, strings.HasSuffix(got, ".00"), got)
	assert.NotContains(t, got, "-")

	assert.Equal(t, "-"+got, FormatMoney(-1e300))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "$0.56", FormatRate(0.56))
	assert.Equal(t, "$0.30", FormatRate(0.3))
	assert.Equal(t, "$88.00", FormatRate(88))
	assert.Equal(t, "$0.125", FormatRate(0.125))
}

func TestFormatFactorAndBound(t *testing.T) {
	assert.Equal(t, "x0.85", FormatFactor(0.85))
	assert.Equal(t, "x1.00", FormatFactor(1))
	assert.Equal(t, "∞", FormatBound(math.Inf(1)))
	assert.Equal(t, "1400", FormatBound(1400))
}

func TestFormatMiles(t *testing.T) {
	assert.Equal(t, "1,000 mi", FormatMiles(1000))
	assert.Equal(t, "12.5 mi", FormatMiles(12.5))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,000", FormatNumber(1000))
	assert.Equal(t, "-1,234,567", FormatNumber(-1234567))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "85.0%", FormatPercent(0.85))
}
