package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"brickbill-backend/models"
	"brickbill-backend/tax"

	"github.com/shopspring/decimal"
)

func sampleInvoiceData() models.InvoiceData {
	invoicer := models.DefaultInvoicerDetails()
	invoicer.BusinessName = "Brick & Trowel Ltd"
	invoicer.CisStatus = tax.CisStandard

	return models.InvoiceData{
		Number:   "INV-2026-0001",
		Invoicer: invoicer,
		Customer: models.CustomerDetails{
			Name:     "ABC Ltd",
			Address:  "1 High Street",
			PostCode: "SW1A 1AA",
		},
		Details: models.InvoiceDetails{
			InvoiceDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			PaymentTermsDays: 30,
			Reference:        "Loft conversion",
		},
		Items: []tax.LineItem{
			{
				ID:          "item-1",
				Description: "Labour",
				Quantity:    decimal.NewFromInt(5),
				NetAmount:   decimal.NewFromInt(200),
				VatRate:     tax.VatStandard,
				CisCategory: tax.CisLabour,
			},
		},
	}
}

func TestNewHistoryRecord(t *testing.T) {
	data := sampleInvoiceData()
	totals := tax.ComputeTotals(data.Items, data.Invoicer.CisStatus)
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	rec, err := models.NewHistoryRecord(data, totals, models.DocumentInvoice, now)
	if err != nil {
		t.Fatalf("NewHistoryRecord: %v", err)
	}

	if rec.ID == "" {
		t.Error("record id not assigned")
	}
	if rec.Status != models.StatusUnpaid {
		t.Errorf("Status = %q, want unpaid", rec.Status)
	}
	if rec.DocumentNumber != "INV-2026-0001" {
		t.Errorf("DocumentNumber = %q", rec.DocumentNumber)
	}
	if rec.CustomerName != "ABC Ltd" {
		t.Errorf("CustomerName = %q", rec.CustomerName)
	}
	if !rec.Total.Equal(totals.Total) {
		t.Errorf("Total = %s, want %s", rec.Total, totals.Total)
	}
	// invoice date 2026-01-01 + 30 day terms
	if want := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC); !rec.DueDate.Equal(want) {
		t.Errorf("DueDate = %s, want %s", rec.DueDate, want)
	}
}

func TestNewHistoryRecord_DueDateFallsBackToNow(t *testing.T) {
	data := sampleInvoiceData()
	data.Details.InvoiceDate = time.Time{}
	data.Details.PaymentTermsDays = 14
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	rec, err := models.NewHistoryRecord(data, tax.InvoiceTotals{}, models.DocumentInvoice, now)
	if err != nil {
		t.Fatalf("NewHistoryRecord: %v", err)
	}
	if want := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC); !rec.DueDate.Equal(want) {
		t.Errorf("DueDate = %s, want %s", rec.DueDate, want)
	}
}

// Archiving then reading back must yield field-for-field equality: the
// snapshot is the frozen record of what was issued.
func TestHistoryRecord_SnapshotRoundTrip(t *testing.T) {
	data := sampleInvoiceData()
	totals := tax.ComputeTotals(data.Items, data.Invoicer.CisStatus)

	rec, err := models.NewHistoryRecord(data, totals, models.DocumentInvoice, time.Now().UTC())
	if err != nil {
		t.Fatalf("NewHistoryRecord: %v", err)
	}

	gotData, err := rec.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	gotTotals, err := rec.TotalsSnapshot()
	if err != nil {
		t.Fatalf("TotalsSnapshot: %v", err)
	}

	assertSameJSON(t, "invoice data", data, gotData)
	assertSameJSON(t, "totals", totals, gotTotals)
}

// Mutating the draft after archival must not reach the frozen snapshot.
func TestHistoryRecord_SnapshotIsDeepCopy(t *testing.T) {
	data := sampleInvoiceData()
	rec, err := models.NewHistoryRecord(data, tax.InvoiceTotals{}, models.DocumentInvoice, time.Now().UTC())
	if err != nil {
		t.Fatalf("NewHistoryRecord: %v", err)
	}

	data.Items[0].Description = "Edited after archival"
	data.Customer.Name = "Someone Else"

	got, err := rec.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if got.Items[0].Description != "Labour" {
		t.Errorf("snapshot item description = %q, want %q", got.Items[0].Description, "Labour")
	}
	if got.Customer.Name != "ABC Ltd" {
		t.Errorf("snapshot customer = %q, want %q", got.Customer.Name, "ABC Ltd")
	}
}

// assertSameJSON compares via canonical JSON so decimal internals don't
// produce false negatives.
func assertSameJSON(t *testing.T, label string, want, got any) {
	t.Helper()
	wantBlob, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal want %s: %v", label, err)
	}
	gotBlob, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal got %s: %v", label, err)
	}
	if string(wantBlob) != string(gotBlob) {
		t.Errorf("%s round-trip mismatch:\nwant %s\ngot  %s", label, wantBlob, gotBlob)
	}
}
