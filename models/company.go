package models

import (
	"time"

	"brickbill-backend/tax"

	"gorm.io/datatypes"
)

// CurrentCompanyVersion is stamped on every persisted profile. Records loaded
// without a version field are treated as version 0 and default-filled.
const CurrentCompanyVersion = 1

// InvoicerDetails is the business profile printed on every document: company
// identity, CIS registration and the bank details payment advice points at.
type InvoicerDetails struct {
	Version        int           `json:"version"`
	BusinessName   string        `json:"business_name"`
	Address        string        `json:"address"`
	PostCode       string        `json:"post_code"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	VatNumber      string        `json:"vat_number"`
	CompanyNumber  string        `json:"company_number"`
	CisStatus      tax.CisStatus `json:"cis_status"`
	Utr            string        `json:"utr"`
	BankName       string        `json:"bank_name"`
	SortCode       string        `json:"sort_code"`
	AccountNumber  string        `json:"account_number"`
	OnboardingDone bool          `json:"onboarding_done"`
}

// DefaultInvoicerDetails returns the exact profile a cleared or brand-new
// account starts with. External "is this still sample data" checks compare
// against this object, so it must stay byte-for-byte stable.
func DefaultInvoicerDetails() InvoicerDetails {
	return InvoicerDetails{
		Version:      CurrentCompanyVersion,
		BusinessName: "",
		CisStatus:    tax.CisNotApplicable,
	}
}

// CompanyRecord is the single persisted row backing the company store, one per
// user. Payload holds the InvoicerDetails JSON so older payloads can be loaded
// with missing fields filled from defaults.
type CompanyRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    string         `json:"-" gorm:"uniqueIndex;size:64"`
	Payload   datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	UpdatedAt time.Time      `json:"updated_at"`
}
