// Package history holds the pure derived views over the archived record list.
// Every selector takes a snapshot slice and computes on demand; nothing here
// is stored or memoized.
package history

import (
	"sort"
	"strings"
	"time"

	"brickbill-backend/matching"
	"brickbill-backend/models"

	"github.com/shopspring/decimal"
)

// DashboardStats summarizes the archive for the dashboard tiles.
type DashboardStats struct {
	InvoiceCount      int             `json:"invoice_count"`
	CreditNoteCount   int             `json:"credit_note_count"`
	PaidCount         int             `json:"paid_count"`
	UnpaidCount       int             `json:"unpaid_count"`
	OverdueCount      int             `json:"overdue_count"`
	TotalInvoiced     decimal.Decimal `json:"total_invoiced"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
	InvoicedThisMonth decimal.Decimal `json:"invoiced_this_month"`
}

// RecentCustomer is the de-duplicated customer view used to prefill new drafts.
type RecentCustomer struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	PostCode string `json:"post_code"`
}

// maxRecentCustomers caps the prefill list.
const maxRecentCustomers = 5

func InvoicesOnly(records []models.HistoryRecord) []models.HistoryRecord {
	return filter(records, func(r models.HistoryRecord) bool {
		return r.DocumentType == models.DocumentInvoice
	})
}

func CreditNotesOnly(records []models.HistoryRecord) []models.HistoryRecord {
	return filter(records, func(r models.HistoryRecord) bool {
		return r.DocumentType == models.DocumentCreditNote
	})
}

func UnpaidInvoices(records []models.HistoryRecord) []models.HistoryRecord {
	return filter(records, func(r models.HistoryRecord) bool {
		return r.DocumentType == models.DocumentInvoice && r.Status == models.StatusUnpaid
	})
}

func PaidInvoices(records []models.HistoryRecord) []models.HistoryRecord {
	return filter(records, func(r models.HistoryRecord) bool {
		return r.DocumentType == models.DocumentInvoice && r.Status == models.StatusPaid
	})
}

// OverdueInvoices returns unpaid invoices whose due date has passed. The day
// boundary is the caller's "today"; a paid record is never overdue.
func OverdueInvoices(records []models.HistoryRecord, today time.Time) []models.HistoryRecord {
	return filter(records, func(r models.HistoryRecord) bool {
		return r.DocumentType == models.DocumentInvoice &&
			r.Status == models.StatusUnpaid &&
			r.DueDate.Before(today)
	})
}

// Search matches the query as a case-insensitive substring of the customer
// name or the document number. An empty query returns everything.
func Search(records []models.HistoryRecord, query string) []models.HistoryRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	return filter(records, func(r models.HistoryRecord) bool {
		return strings.Contains(strings.ToLower(r.CustomerName), q) ||
			strings.Contains(strings.ToLower(r.DocumentNumber), q)
	})
}

// Stats aggregates the archive. Credit notes offset the matching customer's
// unpaid balance by normalized name; there is no enforced linkage to an
// originating invoice. A credit note larger than the customer's open balance
// zeroes it rather than driving the total negative.
func Stats(records []models.HistoryRecord, now time.Time) DashboardStats {
	stats := DashboardStats{
		TotalInvoiced:     decimal.Zero,
		TotalPaid:         decimal.Zero,
		TotalOutstanding:  decimal.Zero,
		InvoicedThisMonth: decimal.Zero,
	}

	unpaidByCustomer := map[string]decimal.Decimal{}
	creditsByCustomer := map[string]decimal.Decimal{}

	for _, r := range records {
		key := matching.Normalize(r.CustomerName)
		switch r.DocumentType {
		case models.DocumentCreditNote:
			stats.CreditNoteCount++
			creditsByCustomer[key] = creditsByCustomer[key].Add(r.Total)
			continue
		case models.DocumentInvoice:
			stats.InvoiceCount++
		}

		stats.TotalInvoiced = stats.TotalInvoiced.Add(r.Total)
		if r.CreatedAt.Year() == now.Year() && r.CreatedAt.Month() == now.Month() {
			stats.InvoicedThisMonth = stats.InvoicedThisMonth.Add(r.Total)
		}

		switch r.Status {
		case models.StatusPaid:
			stats.PaidCount++
			stats.TotalPaid = stats.TotalPaid.Add(r.Total)
		case models.StatusUnpaid:
			stats.UnpaidCount++
			unpaidByCustomer[key] = unpaidByCustomer[key].Add(r.Total)
			if r.DueDate.Before(now) {
				stats.OverdueCount++
			}
		}
	}

	for key, owed := range unpaidByCustomer {
		net := owed.Sub(creditsByCustomer[key])
		if net.IsNegative() {
			net = decimal.Zero
		}
		stats.TotalOutstanding = stats.TotalOutstanding.Add(net)
	}

	return stats
}

// UniqueCustomers lists distinct customers by normalized name, most recent
// first, capped at five. Address details come from the frozen snapshot; a
// snapshot that fails to decode still contributes its name.
func UniqueCustomers(records []models.HistoryRecord) []RecentCustomer {
	sorted := make([]models.HistoryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	seen := map[string]bool{}
	var out []RecentCustomer
	for _, r := range sorted {
		name := strings.TrimSpace(r.CustomerName)
		if name == "" {
			continue
		}
		key := matching.Normalize(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		customer := RecentCustomer{Name: name}
		if data, err := r.Data(); err == nil {
			customer.Address = data.Customer.Address
			customer.PostCode = data.Customer.PostCode
		}
		out = append(out, customer)
		if len(out) == maxRecentCustomers {
			break
		}
	}
	return out
}

func filter(records []models.HistoryRecord, keep func(models.HistoryRecord) bool) []models.HistoryRecord {
	var out []models.HistoryRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
