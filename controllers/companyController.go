package controllers

import (
	"brickbill-backend/middlewares"
	"brickbill-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// CompanyUpdateDTO patches the invoicer profile. Nil fields stay untouched.
type CompanyUpdateDTO struct {
	BusinessName   *string `json:"business_name" validate:"omitempty,max=255"`
	Address        *string `json:"address" validate:"omitempty,max=500"`
	PostCode       *string `json:"post_code" validate:"omitempty,max=10"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
	VatNumber      *string `json:"vat_number" validate:"omitempty,max=20"`
	CompanyNumber  *string `json:"company_number" validate:"omitempty,max=10"`
	CisStatus      *string `json:"cis_status" validate:"omitempty,oneof=not_applicable gross_payment standard unverified"`
	Utr            *string `json:"utr" validate:"omitempty,max=15"`
	BankName       *string `json:"bank_name" validate:"omitempty,max=100"`
	SortCode       *string `json:"sort_code" validate:"omitempty,max=10"`
	AccountNumber  *string `json:"account_number" validate:"omitempty,max=10"`
	OnboardingDone *bool   `json:"onboarding_done"`
}

func GetCompany(c *fiber.Ctx) error {
	details, err := reg.Company.Get(middlewares.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load company details",
			"error":   err.Error(),
		})
	}
	return c.JSON(details)
}

func UpdateCompany(c *fiber.Ctx) error {
	var dto CompanyUpdateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	details, err := reg.Company.Apply(middlewares.UserID(c), utils.UpdatesFromPtrDTO(&dto, nil))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update company details",
			"error":   err.Error(),
		})
	}
	return c.JSON(details)
}

func ClearCompany(c *fiber.Ctx) error {
	details, err := reg.Company.Clear(middlewares.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear company details",
			"error":   err.Error(),
		})
	}
	return c.JSON(details)
}
