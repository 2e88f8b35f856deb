package reimburse

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Trip holds the three inputs of a reimbursement query.
type Trip struct {
	Days     int
	Miles    float64
	Receipts float64
}

// Efficiency returns miles per day, or 0 when Days is not positive.
func (t Trip) Efficiency() float64 {
	if t.Days > 0 {
		return t.Miles / float64(t.Days)
	}
	return 0
}

// Clamp describes how the final total was adjusted, if at all.
type Clamp int

const (
	ClampNone Clamp = iota
	ClampRaised
	ClampCapped
)

func (c Clamp) String() string {
	switch c {
	case ClampRaised:
		return "raised"
	case ClampCapped:
		return "capped"
	default:
		return "none"
	}
}

// Breakdown records every intermediate value of a calculation.
type Breakdown struct {
	Trip    Trip
	Variant Variant

	HighMileage bool

	BaseRate      float64
	BaseComponent float64

	Efficiency       float64
	MileageRate      float64
	MileageComponent float64

	Tier1Multiplier  float64
	ReceiptsRaw      float64
	PenaltyFactor    float64 // 1 when no penalty applied
	ReceiptComponent float64

	Subtotal float64 // before clamping
	Clamp    Clamp
	Total    float64 // after clamping, unrounded

	Amount decimal.Decimal
}

// Calculate applies the policy to a trip. It fails only when the total
// overflows, which takes inputs near the float64 limit.
func Calculate(p Policy, t Trip) (Breakdown, error) {
	b := Breakdown{
		Trip:            t,
		Variant:         p.Variant,
		Efficiency:      t.Efficiency(),
		Tier1Multiplier: p.Tier1Multiplier(),
		PenaltyFactor:   1,
	}

	hm := p.HighMileage
	b.HighMileage = hm != nil && hm.applies(t)

	if b.HighMileage {
		b.BaseRate = hm.BaseRate + math.Min((t.Miles-hm.MinMiles)*hm.BonusPerMile, hm.MaxBonus)
		b.MileageRate = hm.MileageRate
		b.Tier1Multiplier = hm.Tier1Multiplier
	} else {
		b.BaseRate = p.BaseRate(t.Days)
		b.MileageRate = p.MileageRate(b.Efficiency)
	}

	b.BaseComponent = b.BaseRate * float64(t.Days)
	b.MileageComponent = t.Miles * b.MileageRate

	b.ReceiptsRaw = receiptComponent(p.ReceiptTiers, t.Receipts, b.Tier1Multiplier)
	b.ReceiptComponent = b.ReceiptsRaw
	for _, pen := range p.Penalties {
		if pen.applies(t.Days, t.Receipts) {
			b.PenaltyFactor = pen.Factor
			b.ReceiptComponent *= pen.Factor
			break
		}
	}

	b.Subtotal = b.BaseComponent + b.MileageComponent + b.ReceiptComponent
	b.Total, b.Clamp = clampTotal(p, t, b.HighMileage, b.Subtotal)
	amount, err := Round(b.Total)
	if err != nil {
		return b, fmt.Errorf("calculating %d days, %g miles, %g receipts: %w", t.Days, t.Miles, t.Receipts, err)
	}
	b.Amount = amount
	return b, nil
}

// Reimbursement returns only the rounded amount for a trip.
func Reimbursement(p Policy, t Trip) (decimal.Decimal, error) {
	b, err := Calculate(p, t)
	return b.Amount, err
}

// receiptComponent accumulates receipts progressively across the tiers.
// Completed tiers contribute their full width; the tier containing receipts
// contributes only the marginal amount.
func receiptComponent(tiers []Tier, receipts, firstRate float64) float64 {
	var total, lower float64
	for i, tier := range tiers {
		rate := tier.Rate
		if i == 0 {
			rate = firstRate
		}
		if receipts < tier.Upper {
			return total + (receipts-lower)*rate
		}
		total += (tier.Upper - lower) * rate
		lower = tier.Upper
	}
	return total
}

func clampTotal(p Policy, t Trip, highMileage bool, total float64) (float64, Clamp) {
	if highMileage {
		hm := p.HighMileage
		switch {
		case total < hm.Floor:
			return hm.Floor, ClampRaised
		case total > hm.Ceiling:
			return hm.Ceiling, ClampCapped
		}
		return total, ClampNone
	}

	if c := p.SingleDayClamp; c != nil && t.Days == c.Days {
		switch {
		case total > c.Above:
			return math.Min(total, c.CapTo), ClampCapped
		case total < c.Below:
			return math.Max(total, c.RaiseTo), ClampRaised
		}
	}
	return total, ClampNone
}
