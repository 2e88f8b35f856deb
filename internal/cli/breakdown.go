package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/reimburse/internal/reimburse"
)

// BreakdownRows returns the label/detail/value rows describing a calculation.
// The TUI reuses them inside a card.
func BreakdownRows(b reimburse.Breakdown) [][]string {
	t := b.Trip

	baseDetail := fmt.Sprintf("%s/day x %d", FormatRate(b.BaseRate), t.Days)
	if b.HighMileage {
		baseDetail += " (high mileage)"
	}

	receiptDetail := fmt.Sprintf("%s tier 1 at %s", FormatMoney(t.Receipts), FormatRate(b.Tier1Multiplier))
	rows := [][]string{
		{"Base", baseDetail, FormatMoney(b.BaseComponent)},
		{"Mileage", fmt.Sprintf("%s at %s/mi (%.1f mi/day)", FormatMiles(t.Miles), FormatRate(b.MileageRate), b.Efficiency), FormatMoney(b.MileageComponent)},
		{"Receipts", receiptDetail, FormatMoney(b.ReceiptsRaw)},
	}
	if b.PenaltyFactor != 1 {
		rows = append(rows, []string{"Penalty", FormatFactor(b.PenaltyFactor), FormatMoney(b.ReceiptComponent - b.ReceiptsRaw)})
	}
	if b.Clamp != reimburse.ClampNone {
		rows = append(rows, []string{"Clamp", fmt.Sprintf("%s from %s", b.Clamp, FormatMoney(b.Subtotal)), FormatMoney(b.Total - b.Subtotal)})
	}
	return rows
}

// RenderBreakdown renders the component table for a calculation, followed by
// the total and any penalty or clamp notices.
func RenderBreakdown(b reimburse.Breakdown, f reimburse.Format) string {
	var out strings.Builder
	out.WriteString(RenderTable(Table{
		Title:   "Reimbursement Breakdown",
		Headers: []string{"Component", "Detail", "Amount"},
		Rows:    BreakdownRows(b),
	}))
	out.WriteString(RenderAmount(fmt.Sprintf("Total (%s):", b.Variant), reimburse.FormatAmount(b.Amount, f)))
	out.WriteString("\n")

	if b.PenaltyFactor != 1 {
		out.WriteString(RenderNote(fmt.Sprintf("Long-trip penalty keeps %s of the receipt component", FormatPercent(b.PenaltyFactor)), false))
		out.WriteString("\n")
	}
	if b.Clamp != reimburse.ClampNone {
		out.WriteString(RenderNote(fmt.Sprintf("Total %s from %s to %s", b.Clamp, FormatMoney(b.Subtotal), FormatMoney(b.Total)), true))
		out.WriteString("\n")
	}
	return out.String()
}

// RenderPolicy renders every table of a policy.
func RenderPolicy(p reimburse.Policy) string {
	var b strings.Builder

	baseRows := make([][]string, 0, len(p.BaseRates)+1)
	for i, r := range p.BaseRates {
		baseRows = append(baseRows, []string{fmt.Sprintf("%d", i+1), FormatRate(r)})
	}
	baseRows = append(baseRows, []string{fmt.Sprintf("%d+", len(p.BaseRates)+1), FormatRate(p.FloorRate)})
	b.WriteString(RenderTable(Table{
		Title:   "Base Rate Per Day",
		Headers: []string{"Days", "Rate"},
		Rows:    baseRows,
	}))
	b.WriteString("\n")

	bandRows := make([][]string, 0, len(p.MileageBands)+1)
	lower := 0.0
	for _, band := range p.MileageBands {
		bandRows = append(bandRows, []string{fmt.Sprintf("[%s, %s)", FormatBound(lower), FormatBound(band.Below)), FormatRate(band.Rate)})
		lower = band.Below
	}
	bandRows = append(bandRows, []string{fmt.Sprintf("≥ %s", FormatBound(lower)), FormatRate(p.TopMileageRate)})
	b.WriteString(RenderTable(Table{
		Title:   "Mileage Rate By Miles/Day",
		Headers: []string{"Efficiency", "Rate"},
		Rows:    bandRows,
	}))
	b.WriteString("\n")

	tierRows := make([][]string, 0, len(p.ReceiptTiers))
	lower = 0
	for _, tier := range p.ReceiptTiers {
		tierRows = append(tierRows, []string{fmt.Sprintf("[%s, %s)", FormatBound(lower), FormatBound(tier.Upper)), FormatRate(tier.Rate)})
		lower = tier.Upper
	}
	b.WriteString(RenderTable(Table{
		Title:   "Receipt Tiers (Marginal)",
		Headers: []string{"Receipts", "Rate"},
		Rows:    tierRows,
	}))
	b.WriteString("\n")

	if len(p.Penalties) > 0 {
		penRows := make([][]string, 0, len(p.Penalties))
		for _, pen := range p.Penalties {
			penRows = append(penRows, []string{
				fmt.Sprintf("days ≥ %d, receipts ≥ %s", pen.MinDays, FormatBound(pen.MinReceipts)),
				FormatFactor(pen.Factor),
			})
		}
		b.WriteString(RenderTable(Table{
			Title:   "Receipt Penalties (First Match)",
			Headers: []string{"When", "Factor"},
			Rows:    penRows,
		}))
		b.WriteString("\n")
	}

	if hm := p.HighMileage; hm != nil {
		b.WriteString(RenderTable(Table{
			Title:   "High-Mileage Override",
			Headers: []string{"Rule", "Value"},
			Rows: [][]string{
				{"Applies when", fmt.Sprintf("days = %d, miles > %s", hm.Days, FormatBound(hm.MinMiles))},
				{"Base rate", fmt.Sprintf("%s + %s/mi over, max +%s", FormatRate(hm.BaseRate), FormatRate(hm.BonusPerMile), FormatRate(hm.MaxBonus))},
				{"Mileage rate", FormatRate(hm.MileageRate)},
				{"Tier 1 multiplier", FormatRate(hm.Tier1Multiplier)},
				{"Total range", fmt.Sprintf("[%s, %s]", FormatMoney(hm.Floor), FormatMoney(hm.Ceiling))},
			},
		}))
		b.WriteString("\n")
	}

	if c := p.SingleDayClamp; c != nil {
		b.WriteString(RenderTable(Table{
			Title:   "Single-Day Clamp",
			Headers: []string{"Rule", "Value"},
			Rows: [][]string{
				{"Applies when", fmt.Sprintf("days = %d", c.Days)},
				{fmt.Sprintf("Above %s", FormatMoney(c.Above)), FormatMoney(c.CapTo)},
				{fmt.Sprintf("Below %s", FormatMoney(c.Below)), FormatMoney(c.RaiseTo)},
			},
		}))
		b.WriteString("\n")
	}

	return b.String()
}
