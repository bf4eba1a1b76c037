package tax

import "github.com/shopspring/decimal"

// VatRate is the VAT treatment selected per line item.
type VatRate string

const (
	VatZero          VatRate = "0"
	VatReduced       VatRate = "5"
	VatStandard      VatRate = "20"
	VatReverseCharge VatRate = "reverse_charge"
)

// CisStatus is the invoicer's Construction Industry Scheme verification status.
type CisStatus string

const (
	CisNotApplicable CisStatus = "not_applicable"
	CisGrossPayment  CisStatus = "gross_payment"
	CisStandard      CisStatus = "standard"
	CisUnverified    CisStatus = "unverified"
)

// CisCategory classifies a line item for CIS deduction purposes.
type CisCategory string

const (
	CisLabour      CisCategory = "labour"
	CisMaterials   CisCategory = "materials"
	CisNotRelevant CisCategory = "not_applicable"
)

var vatPercents = map[VatRate]decimal.Decimal{
	VatZero:     decimal.Zero,
	VatReduced:  decimal.NewFromInt(5),
	VatStandard: decimal.NewFromInt(20),
	// Reverse charge: liability shifts to the customer, supplier charges 0%.
	VatReverseCharge: decimal.Zero,
}

var cisDeductionRates = map[CisStatus]decimal.Decimal{
	CisNotApplicable: decimal.Zero,
	CisGrossPayment:  decimal.Zero,
	CisStandard:      decimal.NewFromFloat(0.20),
	CisUnverified:    decimal.NewFromFloat(0.30),
}

// VatPercent resolves the percentage charged for a rate. Unknown rates charge 0.
func VatPercent(rate VatRate) decimal.Decimal {
	if p, ok := vatPercents[rate]; ok {
		return p
	}
	return decimal.Zero
}

// CisDeductionRate resolves the deduction applied to labour amounts for a
// verification status. Unknown statuses deduct nothing.
func CisDeductionRate(status CisStatus) decimal.Decimal {
	if r, ok := cisDeductionRates[status]; ok {
		return r
	}
	return decimal.Zero
}
