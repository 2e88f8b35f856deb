// Package reimburse computes travel reimbursement amounts from trip duration,
// miles traveled, and total receipts.
package reimburse

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Variant names one of the two formula variants.
type Variant string

const (
	// VariantHighMileage boosts single-day trips over 800 miles and clamps
	// them into a fixed range.
	VariantHighMileage Variant = "high-mileage"
	// VariantSingleDay keeps every single-day trip inside a narrow band.
	VariantSingleDay Variant = "single-day"
)

// DefaultVariant is used when neither config nor flags pick one.
const DefaultVariant = VariantSingleDay

// Variants lists the known variants in display order.
var Variants = []Variant{VariantSingleDay, VariantHighMileage}

// ParseVariant resolves a variant name. "a" and "b" are accepted as
// shorthands for high-mileage and single-day.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(DefaultVariant):
		return DefaultVariant, nil
	case string(VariantHighMileage), "a":
		return VariantHighMileage, nil
	case "b":
		return VariantSingleDay, nil
	}
	return "", fmt.Errorf("unknown variant %q (want %s or %s)", s, VariantSingleDay, VariantHighMileage)
}

// Band is a half-open efficiency band: it applies while efficiency < Below.
type Band struct {
	Below float64
	Rate  float64
}

// Tier is a receipt bracket ending (exclusive) at Upper, priced at Rate.
type Tier struct {
	Upper float64
	Rate  float64
}

// Penalty scales the receipt component for long trips with large receipts.
type Penalty struct {
	MinDays     int
	MinReceipts float64
	Factor      float64
}

func (p Penalty) applies(days int, receipts float64) bool {
	return days >= p.MinDays && receipts >= p.MinReceipts
}

// HighMileageRule overrides the rates for short trips with very long drives
// and clamps their total into [Floor, Ceiling].
type HighMileageRule struct {
	Days            int
	MinMiles        float64 // exclusive
	BaseRate        float64
	BonusPerMile    float64
	MaxBonus        float64
	MileageRate     float64
	Tier1Multiplier float64
	Floor           float64
	Ceiling         float64
}

func (r HighMileageRule) applies(t Trip) bool {
	return t.Days == r.Days && t.Miles > r.MinMiles
}

// ClampRule pulls totals for trips of exactly Days days back into a band.
// A total above Above becomes CapTo; a total below Below becomes RaiseTo.
type ClampRule struct {
	Days    int
	Above   float64
	CapTo   float64
	Below   float64
	RaiseTo float64
}

// Policy is the full set of rates and rules used by Calculate.
type Policy struct {
	Variant Variant

	// BaseRates[i] is the per-day rate for a trip of i+1 days.
	BaseRates []float64
	// FloorRate applies to every day count outside BaseRates.
	FloorRate float64

	MileageBands   []Band
	TopMileageRate float64

	// ReceiptTiers must be ascending and end with an unbounded tier. The
	// first tier's Rate is the baseline tier-1 multiplier.
	ReceiptTiers []Tier

	// Penalties are checked in order; the first match wins.
	Penalties []Penalty

	HighMileage    *HighMileageRule
	SingleDayClamp *ClampRule
}

var standardBaseRates = []float64{88, 82, 78, 70, 66, 58, 52, 43, 38, 36, 34, 32}

func standardMileageBands() []Band {
	return []Band{
		{Below: 45, Rate: 0.48},
		{Below: 90, Rate: 0.56},
		{Below: 140, Rate: 0.58},
		{Below: 190, Rate: 0.54},
	}
}

func standardReceiptTiers() []Tier {
	return []Tier{
		{Upper: 80, Rate: 0.84},
		{Upper: 400, Rate: 0.80},
		{Upper: 900, Rate: 0.72},
		{Upper: 1400, Rate: 0.55},
		{Upper: math.Inf(1), Rate: 0.30},
	}
}

// DefaultPolicy returns the built-in policy for a variant. Unknown variants
// fall back to DefaultVariant.
func DefaultPolicy(v Variant) Policy {
	p := Policy{
		Variant:        v,
		BaseRates:      append([]float64(nil), standardBaseRates...),
		FloorRate:      30,
		MileageBands:   standardMileageBands(),
		TopMileageRate: 0.42,
		ReceiptTiers:   standardReceiptTiers(),
	}

	switch v {
	case VariantHighMileage:
		p.Penalties = []Penalty{
			{MinDays: 9, MinReceipts: 1300, Factor: 0.88},
			{MinDays: 8, MinReceipts: 1000, Factor: 0.92},
		}
		p.HighMileage = &HighMileageRule{
			Days:            1,
			MinMiles:        800,
			BaseRate:        88,
			BonusPerMile:    0.05,
			MaxBonus:        50,
			MileageRate:     0.65,
			Tier1Multiplier: 0.95,
			Floor:           1200,
			Ceiling:         1500,
		}
	default:
		p.Variant = VariantSingleDay
		p.Penalties = []Penalty{
			{MinDays: 9, MinReceipts: 1300, Factor: 0.85},
			{MinDays: 8, MinReceipts: 1000, Factor: 0.90},
		}
		p.SingleDayClamp = &ClampRule{
			Days:    1,
			Above:   210,
			CapTo:   205,
			Below:   112,
			RaiseTo: 116,
		}
	}
	return p
}

// Validate reports whether the policy tables are well formed.
func (p Policy) Validate() error {
	var errs []error

	if len(p.BaseRates) == 0 {
		errs = append(errs, errors.New("base rates: table is empty"))
	}
	for i, r := range p.BaseRates {
		if r < 0 {
			errs = append(errs, fmt.Errorf("base rates: day %d has negative rate %g", i+1, r))
		}
	}

	for i := 1; i < len(p.MileageBands); i++ {
		if p.MileageBands[i].Below <= p.MileageBands[i-1].Below {
			errs = append(errs, fmt.Errorf("mileage bands: band %d does not ascend", i))
		}
	}

	if len(p.ReceiptTiers) == 0 {
		errs = append(errs, errors.New("receipt tiers: table is empty"))
	} else {
		for i := 1; i < len(p.ReceiptTiers); i++ {
			if p.ReceiptTiers[i].Upper <= p.ReceiptTiers[i-1].Upper {
				errs = append(errs, fmt.Errorf("receipt tiers: tier %d does not ascend", i+1))
			}
		}
		if last := p.ReceiptTiers[len(p.ReceiptTiers)-1]; !math.IsInf(last.Upper, 1) {
			errs = append(errs, errors.New("receipt tiers: last tier must be unbounded"))
		}
	}

	for i, pen := range p.Penalties {
		if pen.Factor <= 0 || pen.Factor > 1 {
			errs = append(errs, fmt.Errorf("penalty %d: factor %g outside (0, 1]", i+1, pen.Factor))
		}
	}

	if hm := p.HighMileage; hm != nil && hm.Floor > hm.Ceiling {
		errs = append(errs, fmt.Errorf("high mileage: floor %g above ceiling %g", hm.Floor, hm.Ceiling))
	}

	return errors.Join(errs...)
}

// BaseRate returns the per-day rate for a trip of the given length.
func (p Policy) BaseRate(days int) float64 {
	if days >= 1 && days <= len(p.BaseRates) {
		return p.BaseRates[days-1]
	}
	return p.FloorRate
}

// MileageRate returns the per-mile rate for a miles-per-day efficiency.
func (p Policy) MileageRate(efficiency float64) float64 {
	for _, b := range p.MileageBands {
		if efficiency < b.Below {
			return b.Rate
		}
	}
	return p.TopMileageRate
}

// Tier1Multiplier returns the baseline rate of the first receipt tier.
func (p Policy) Tier1Multiplier() float64 {
	if len(p.ReceiptTiers) == 0 {
		return 0
	}
	return p.ReceiptTiers[0].Rate
}
