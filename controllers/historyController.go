package controllers

import (
	"time"

	"brickbill-backend/database"
	"brickbill-backend/history"
	"brickbill-backend/matching"
	"brickbill-backend/middlewares"
	"brickbill-backend/models"
	"brickbill-backend/tax"

	"github.com/gofiber/fiber/v2"
)

// CreditNoteDTO carries the optional link back to the invoice being credited.
// The link is informational; offsetting in aggregates goes by customer name.
type CreditNoteDTO struct {
	RelatedInvoiceNumber *string `json:"related_invoice_number" validate:"omitempty,max=64"`
}

// FinalizeInvoice turns the current draft into an archived invoice. It runs
// under RequestTx, so the number consume and the archive insert are one unit
// of work: both commit or neither does.
func FinalizeInvoice(c *fiber.Ctx) error {
	return finalize(c, models.DocumentInvoice, "")
}

func FinalizeCreditNote(c *fiber.Ctx) error {
	var dto CreditNoteDTO
	if len(c.Body()) > 0 {
		if err := middlewares.BindAndValidate(c, &dto); err != nil {
			return err
		}
	}
	related := ""
	if dto.RelatedInvoiceNumber != nil {
		related = *dto.RelatedInvoiceNumber
	}
	return finalize(c, models.DocumentCreditNote, related)
}

func finalize(c *fiber.Ctx, docType models.DocumentType, relatedInvoiceNumber string) error {
	userID := middlewares.UserID(c)
	tx := database.GetRequestDB(c)
	now := time.Now()

	company, err := reg.Company.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load company details",
			"error":   err.Error(),
		})
	}
	draft, err := reg.Draft.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load draft",
			"error":   err.Error(),
		})
	}

	var number string
	if docType == models.DocumentCreditNote {
		number, err = reg.Settings.ConsumeCreditNoteNumber(tx, userID, now)
	} else {
		number, err = reg.Settings.ConsumeInvoiceNumber(tx, userID, now)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not assign document number",
			"error":   err.Error(),
		})
	}

	data := models.InvoiceData{
		Number:               number,
		Invoicer:             company,
		Customer:             draft.Customer,
		Details:              draft.Details,
		Items:                draft.Items,
		RelatedInvoiceNumber: relatedInvoiceNumber,
	}
	totals := tax.ComputeTotals(draft.Items, company.CisStatus)

	rec, err := reg.History.SaveInvoice(tx, userID, data, totals, docType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not archive document",
			"error":   err.Error(),
		})
	}

	return c.JSON(rec)
}

// GetHistory lists the archive, optionally narrowed by ?q= substring search
// and ?type=invoice|credit_note.
func GetHistory(c *fiber.Ctx) error {
	records, err := reg.History.List(middlewares.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load history",
			"error":   err.Error(),
		})
	}

	records = history.Search(records, c.Query("q"))
	switch c.Query("type") {
	case "invoice":
		records = history.InvoicesOnly(records)
	case "credit_note":
		records = history.CreditNotesOnly(records)
	}

	return c.JSON(fiber.Map{
		"records": records,
		"message": "success",
	})
}

func GetDashboardStats(c *fiber.Ctx) error {
	records, err := reg.History.List(middlewares.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load history",
			"error":   err.Error(),
		})
	}
	return c.JSON(history.Stats(records, time.Now()))
}

func GetOverdueInvoices(c *fiber.Ctx) error {
	records, err := reg.History.List(middlewares.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load history",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"records": history.OverdueInvoices(records, time.Now()),
		"message": "success",
	})
}

func MarkAsPaid(c *fiber.Ctx) error {
	if err := reg.History.MarkAsPaid(middlewares.UserID(c), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update status",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func MarkAsUnpaid(c *fiber.Ctx) error {
	if err := reg.History.MarkAsUnpaid(middlewares.UserID(c), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update status",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func DeleteHistoryRecord(c *fiber.Ctx) error {
	if err := reg.History.Delete(middlewares.UserID(c), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete record",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// GetRecentCustomers returns the de-duplicated prefill list.
func GetRecentCustomers(c *fiber.Ctx) error {
	records, err := reg.History.List(middlewares.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load history",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"customers": history.UniqueCustomers(records),
		"message":   "success",
	})
}

// GetDuplicateCustomers reports archived customer names that likely refer to
// the same business under different formatting.
func GetDuplicateCustomers(c *fiber.Ctx) error {
	records, err := reg.History.List(middlewares.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load history",
			"error":   err.Error(),
		})
	}

	var names []string
	for _, r := range records {
		names = append(names, r.CustomerName)
	}
	return c.JSON(fiber.Map{
		"duplicates": matching.FindDuplicates(names),
		"message":    "success",
	})
}
