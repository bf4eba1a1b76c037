package models

import (
	"encoding/json"
	"time"

	"brickbill-backend/tax"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type DocumentType string

const (
	DocumentInvoice    DocumentType = "invoice"
	DocumentCreditNote DocumentType = "credit_note"
)

type PaymentStatus string

const (
	StatusUnpaid PaymentStatus = "unpaid"
	StatusPaid   PaymentStatus = "paid"
)

// InvoiceData is the assembled document handed to history and to the PDF/CSV
// exporters: the invoicer profile, the customer, the document fields and the
// full item list (invalid items included, they are simply worth nothing).
type InvoiceData struct {
	Number               string          `json:"number"`
	Invoicer             InvoicerDetails `json:"invoicer"`
	Customer             CustomerDetails `json:"customer"`
	Details              InvoiceDetails  `json:"details"`
	Items                []tax.LineItem  `json:"items"`
	RelatedInvoiceNumber string          `json:"related_invoice_number,omitempty"`
}

// HistoryRecord is one archived document. InvoiceData and Totals are frozen
// jsonb snapshots of what was issued; the scalar columns beside them exist for
// querying and are written once at archival. Status is the only mutable field.
type HistoryRecord struct {
	ID                   string          `json:"id" gorm:"primaryKey"`
	UserID               string          `json:"-" gorm:"index;size:64"`
	DocumentType         DocumentType    `json:"document_type" gorm:"size:20;index"`
	DocumentNumber       string          `json:"document_number" gorm:"size:64"`
	CustomerName         string          `json:"customer_name" gorm:"size:255"`
	Total                decimal.Decimal `json:"total" gorm:"type:numeric(12,2)"`
	Status               PaymentStatus   `json:"status" gorm:"size:10"`
	CreatedAt            time.Time       `json:"created_at"`
	DueDate              time.Time       `json:"due_date"`
	RelatedInvoiceNumber string          `json:"related_invoice_number,omitempty" gorm:"size:64"`
	InvoiceData          datatypes.JSON  `json:"invoice_data" gorm:"type:jsonb"`
	Totals               datatypes.JSON  `json:"totals" gorm:"type:jsonb"`
}

// NewHistoryRecord freezes the given document into an archive record. The
// snapshots are deep copies via JSON marshalling, so later edits to the draft
// cannot reach the archive. DueDate is the invoice date plus payment terms.
func NewHistoryRecord(data InvoiceData, totals tax.InvoiceTotals, docType DocumentType, now time.Time) (HistoryRecord, error) {
	dataBlob, err := json.Marshal(data)
	if err != nil {
		return HistoryRecord{}, err
	}
	totalsBlob, err := json.Marshal(totals)
	if err != nil {
		return HistoryRecord{}, err
	}

	invoiceDate := data.Details.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = now
	}

	return HistoryRecord{
		ID:                   uuid.NewString(),
		DocumentType:         docType,
		DocumentNumber:       data.Number,
		CustomerName:         data.Customer.Name,
		Total:                totals.Total,
		Status:               StatusUnpaid,
		CreatedAt:            now,
		DueDate:              invoiceDate.AddDate(0, 0, data.Details.PaymentTermsDays),
		RelatedInvoiceNumber: data.RelatedInvoiceNumber,
		InvoiceData:          datatypes.JSON(dataBlob),
		Totals:               datatypes.JSON(totalsBlob),
	}, nil
}

// Data decodes the frozen InvoiceData snapshot.
func (r HistoryRecord) Data() (InvoiceData, error) {
	var data InvoiceData
	err := json.Unmarshal(r.InvoiceData, &data)
	return data, err
}

// TotalsSnapshot decodes the frozen totals.
func (r HistoryRecord) TotalsSnapshot() (tax.InvoiceTotals, error) {
	var totals tax.InvoiceTotals
	err := json.Unmarshal(r.Totals, &totals)
	return totals, err
}
