package controllers

import (
	"time"

	"brickbill-backend/middlewares"
	"brickbill-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CustomerUpdateDTO patches the draft's customer block.
type CustomerUpdateDTO struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Address  *string `json:"address" validate:"omitempty,max=500"`
	PostCode *string `json:"post_code" validate:"omitempty,max=10"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
}

// DetailsUpdateDTO patches the document-level fields of the draft.
type DetailsUpdateDTO struct {
	InvoiceDate      *string `json:"invoice_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentTermsDays *int    `json:"payment_terms_days" validate:"omitempty,min=0,max=365"`
	Reference        *string `json:"reference" validate:"omitempty,max=100"`
	Notes            *string `json:"notes" validate:"omitempty,max=2000"`
}

// LineItemUpdateDTO patches one line item by field.
type LineItemUpdateDTO struct {
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Quantity    *decimal.Decimal `json:"quantity"`
	NetAmount   *decimal.Decimal `json:"net_amount"`
	VatRate     *string          `json:"vat_rate" validate:"omitempty,oneof=0 5 20 reverse_charge"`
	CisCategory *string          `json:"cis_category" validate:"omitempty,oneof=labour materials not_applicable"`
}

func GetDraft(c *fiber.Ctx) error {
	draft, err := reg.Draft.Get(middlewares.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load draft",
			"error":   err.Error(),
		})
	}
	return c.JSON(draft)
}

func UpdateDraftCustomer(c *fiber.Ctx) error {
	var dto CustomerUpdateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	draft, err := reg.Draft.ApplyCustomer(middlewares.UserID(c), utils.UpdatesFromPtrDTO(&dto, nil))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update customer",
			"error":   err.Error(),
		})
	}
	return c.JSON(draft)
}

func UpdateDraftDetails(c *fiber.Ctx) error {
	var dto DetailsUpdateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	// The wire format for dates is YYYY-MM-DD; the payload stores RFC 3339.
	if dto.InvoiceDate != nil {
		day, err := time.Parse("2006-01-02", *dto.InvoiceDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid invoice date"})
		}
		updates["invoice_date"] = day.UTC().Format(time.RFC3339)
	}

	draft, err := reg.Draft.ApplyDetails(middlewares.UserID(c), updates)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update details",
			"error":   err.Error(),
		})
	}
	return c.JSON(draft)
}

func AddLineItem(c *fiber.Ctx) error {
	item, err := reg.Draft.AddItem(middlewares.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add line item",
			"error":   err.Error(),
		})
	}
	return c.JSON(item)
}

func UpdateLineItem(c *fiber.Ctx) error {
	var dto LineItemUpdateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	// Negative figures never reach the draft; zero is allowed and simply
	// keeps the item out of totals.
	if dto.Quantity != nil && dto.Quantity.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must not be negative"})
	}
	if dto.NetAmount != nil && dto.NetAmount.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "net amount must not be negative"})
	}

	draft, err := reg.Draft.UpdateItem(middlewares.UserID(c), c.Params("id"), utils.UpdatesFromPtrDTO(&dto, nil))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update line item",
			"error":   err.Error(),
		})
	}
	return c.JSON(draft)
}

func RemoveLineItem(c *fiber.Ctx) error {
	draft, err := reg.Draft.RemoveItem(middlewares.UserID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove line item",
			"error":   err.Error(),
		})
	}
	return c.JSON(draft)
}

func CopyLineItem(c *fiber.Ctx) error {
	draft, err := reg.Draft.CopyItem(middlewares.UserID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not copy line item",
			"error":   err.Error(),
		})
	}
	return c.JSON(draft)
}

func ClearDraft(c *fiber.Ctx) error {
	draft, err := reg.Draft.Clear(middlewares.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear draft",
			"error":   err.Error(),
		})
	}
	return c.JSON(draft)
}

// GetDraftTotals computes live totals for the draft under the invoicer's
// current CIS status.
func GetDraftTotals(c *fiber.Ctx) error {
	userID := middlewares.UserID(c)

	company, err := reg.Company.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load company details",
			"error":   err.Error(),
		})
	}

	totals, err := reg.Draft.Totals(userID, company.CisStatus)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute totals",
			"error":   err.Error(),
		})
	}
	return c.JSON(totals)
}
