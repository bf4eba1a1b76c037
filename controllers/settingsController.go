package controllers

import (
	"time"

	"brickbill-backend/middlewares"
	"brickbill-backend/numbering"
	"brickbill-backend/stores"
	"brickbill-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// NumberingUpdateDTO patches one numbering series. The counter itself is not
// patchable; it moves only through consume and the explicit reset endpoint.
type NumberingUpdateDTO struct {
	Prefix         *string `json:"prefix" validate:"omitempty,max=20"`
	Pattern        *string `json:"pattern" validate:"omitempty,max=100"`
	SequenceDigits *int    `json:"sequence_digits" validate:"omitempty,min=1,max=10"`
	ResetPeriod    *string `json:"reset_period" validate:"omitempty,oneof=never yearly monthly"`
}

// PatternPreviewDTO asks for a validation + preview of a candidate pattern.
type PatternPreviewDTO struct {
	Pattern string `json:"pattern" validate:"required,max=100"`
	Series  string `json:"series" validate:"required,oneof=invoice credit_note"`
}

func seriesParam(c *fiber.Ctx) (stores.Series, bool) {
	switch c.Params("series") {
	case "invoice":
		return stores.SeriesInvoice, true
	case "credit_note":
		return stores.SeriesCreditNote, true
	}
	return "", false
}

func GetSettings(c *fiber.Ctx) error {
	settings, err := reg.Settings.Get(middlewares.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load settings",
			"error":   err.Error(),
		})
	}
	return c.JSON(settings)
}

func UpdateNumbering(c *fiber.Ctx) error {
	series, ok := seriesParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown series"})
	}

	var dto NumberingUpdateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	// Pattern problems are a validation result, never a server fault.
	if dto.Pattern != nil {
		if err := numbering.ValidatePattern(*dto.Pattern); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"valid": false,
				"error": err.Error(),
			})
		}
	}

	settings, err := reg.Settings.ApplyConfig(middlewares.UserID(c), series, utils.UpdatesFromPtrDTO(&dto, nil))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update numbering",
			"error":   err.Error(),
		})
	}
	return c.JSON(settings)
}

// PreviewNumbering validates a candidate pattern and shows the number it would
// produce next, without consuming anything. Idempotent by construction.
func PreviewNumbering(c *fiber.Ctx) error {
	var dto PatternPreviewDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	if err := numbering.ValidatePattern(dto.Pattern); err != nil {
		return c.JSON(fiber.Map{
			"valid": false,
			"error": err.Error(),
		})
	}

	settings, err := reg.Settings.Get(middlewares.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load settings",
			"error":   err.Error(),
		})
	}

	cfg := settings.Invoice
	if dto.Series == "credit_note" {
		cfg = settings.CreditNote
	}
	return c.JSON(fiber.Map{
		"valid":   true,
		"preview": numbering.Preview(dto.Pattern, cfg, time.Now()),
	})
}

// NextNumbers previews both series without consuming either.
func NextNumbers(c *fiber.Ctx) error {
	userID := middlewares.UserID(c)
	now := time.Now()

	invoiceNo, err := reg.Settings.NextInvoiceNumber(userID, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not generate preview",
			"error":   err.Error(),
		})
	}
	creditNo, err := reg.Settings.NextCreditNoteNumber(userID, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not generate preview",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"invoice":     invoiceNo,
		"credit_note": creditNo,
	})
}

// ResetSequence zeroes one counter. Destructive, user-initiated.
func ResetSequence(c *fiber.Ctx) error {
	series, ok := seriesParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown series"})
	}

	settings, err := reg.Settings.ResetSequence(middlewares.UserID(c), series)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not reset sequence",
			"error":   err.Error(),
		})
	}
	return c.JSON(settings)
}
