package controllers

import (
	"fmt"
	"time"

	"brickbill-backend/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ExportHistory writes the archive as a spreadsheet. The rows come from the
// frozen query columns, so an export always matches what was issued.
func ExportHistory(c *fiber.Ctx) error {
	records, err := reg.History.List(middlewares.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load history",
			"error":   err.Error(),
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"Number", "Type", "Customer", "Issued", "Due", "Status", "Total", "Related invoice"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build export",
			"error":   err.Error(),
		})
	}

	for i, r := range records {
		row := []interface{}{
			r.DocumentNumber,
			string(r.DocumentType),
			r.CustomerName,
			r.CreatedAt.Format("2006-01-02"),
			r.DueDate.Format("2006-01-02"),
			string(r.Status),
			r.Total.StringFixed(2),
			r.RelatedInvoiceNumber,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not build export",
				"error":   err.Error(),
			})
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not write export",
			"error":   err.Error(),
		})
	}

	filename := "invoice-history-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}
