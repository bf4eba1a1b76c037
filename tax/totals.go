package tax

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one billable row on a document. Quantity and NetAmount are kept
// as decimals end to end; floats never enter the monetary path.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	VatRate     VatRate         `json:"vat_rate"`
	CisCategory CisCategory     `json:"cis_category"`
}

// Valid reports whether the item counts towards totals. Invalid items stay in
// the document list but contribute nothing; a negative quantity can come in
// through an old persisted payload and must never subtract from the subtotal.
func (li LineItem) Valid() bool {
	return strings.TrimSpace(li.Description) != "" &&
		li.NetAmount.IsPositive() &&
		!li.Quantity.IsNegative()
}

// LineNet is quantity times unit net amount, unrounded.
func (li LineItem) LineNet() decimal.Decimal {
	return li.Quantity.Mul(li.NetAmount)
}

// VatLine is one entry of the per-rate VAT breakdown.
type VatLine struct {
	Rate   VatRate         `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// CisBreakdown reports the Construction Industry Scheme deduction. Only labour
// is subject to deduction; materials are reported but never deducted.
type CisBreakdown struct {
	LabourTotal     decimal.Decimal `json:"labour_total"`
	MaterialsTotal  decimal.Decimal `json:"materials_total"`
	DeductionRate   decimal.Decimal `json:"deduction_rate"`
	DeductionAmount decimal.Decimal `json:"deduction_amount"`
	NetPayable      decimal.Decimal `json:"net_payable"`
}

// InvoiceTotals is the derived monetary summary of a document. It is computed
// on demand and snapshotted at archival time, never recomputed afterwards.
type InvoiceTotals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	VatBreakdown []VatLine       `json:"vat_breakdown"`
	TotalVat     decimal.Decimal `json:"total_vat"`
	Total        decimal.Decimal `json:"total"`
	Cis          *CisBreakdown   `json:"cis,omitempty"`
}

// ComputeTotals derives totals from the given items under UK VAT and CIS rules.
// Accumulation happens at full precision; rounding to 2dp is applied only when
// a figure is emitted, so long item lists cannot drift penny by penny.
func ComputeTotals(items []LineItem, cisStatus CisStatus) InvoiceTotals {
	subtotal := decimal.Zero
	totalVat := decimal.Zero
	labour := decimal.Zero
	materials := decimal.Zero

	// Per-rate accumulation in first-seen order.
	var rateOrder []VatRate
	rateNets := map[VatRate]decimal.Decimal{}

	for _, li := range items {
		if !li.Valid() {
			continue
		}
		net := li.LineNet()
		subtotal = subtotal.Add(net)

		if _, seen := rateNets[li.VatRate]; !seen {
			rateOrder = append(rateOrder, li.VatRate)
		}
		rateNets[li.VatRate] = rateNets[li.VatRate].Add(net)

		switch li.CisCategory {
		case CisLabour:
			labour = labour.Add(net)
		case CisMaterials:
			materials = materials.Add(net)
		}
	}

	breakdown := make([]VatLine, 0, len(rateOrder))
	for _, rate := range rateOrder {
		amount := rateNets[rate].Mul(VatPercent(rate)).Div(decimal.NewFromInt(100))
		totalVat = totalVat.Add(amount)
		breakdown = append(breakdown, VatLine{Rate: rate, Amount: amount.Round(2)})
	}

	totals := InvoiceTotals{
		Subtotal:     subtotal.Round(2),
		VatBreakdown: breakdown,
		TotalVat:     totalVat.Round(2),
		Total:        subtotal.Add(totalVat).Round(2),
	}

	if cisStatus != CisNotApplicable {
		rate := CisDeductionRate(cisStatus)
		deduction := labour.Mul(rate).Round(2)
		totals.Cis = &CisBreakdown{
			LabourTotal:     labour.Round(2),
			MaterialsTotal:  materials.Round(2),
			DeductionRate:   rate,
			DeductionAmount: deduction,
			NetPayable:      totals.Total.Sub(deduction),
		}
	}

	return totals
}
