package models

import (
	"time"

	"brickbill-backend/tax"

	"gorm.io/datatypes"
)

// CustomerDetails is the billed party on the in-progress document.
type CustomerDetails struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	PostCode string `json:"post_code"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// InvoiceDetails carries the document-level fields of the draft.
type InvoiceDetails struct {
	InvoiceDate      time.Time `json:"invoice_date"`
	PaymentTermsDays int       `json:"payment_terms_days"`
	Reference        string    `json:"reference"`
	Notes            string    `json:"notes"`
}

// Draft is the mutable in-progress document. It is owned by the draft store
// until archival, at which point a deep-copied snapshot goes to history and
// the draft keeps no link to it.
type Draft struct {
	Version  int             `json:"version"`
	Customer CustomerDetails `json:"customer"`
	Details  InvoiceDetails  `json:"details"`
	Items    []tax.LineItem  `json:"items"`
}

// DefaultDraft is the named empty state a cleared draft restores to.
func DefaultDraft() Draft {
	return Draft{
		Version: CurrentCompanyVersion,
		Details: InvoiceDetails{
			PaymentTermsDays: 30,
		},
		Items: []tax.LineItem{},
	}
}

// DraftRecord is the single persisted row backing the draft store.
type DraftRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    string         `json:"-" gorm:"uniqueIndex;size:64"`
	Payload   datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	UpdatedAt time.Time      `json:"updated_at"`
}
