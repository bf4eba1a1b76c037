package routes

import (
	"github.com/gofiber/fiber/v2"

	"brickbill-backend/controllers"
	"brickbill-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Company profile
	protected.Get("/company", controllers.GetCompany)
	protected.Patch("/company", controllers.UpdateCompany)
	protected.Delete("/company", controllers.ClearCompany)

	// Numbering settings
	protected.Get("/settings", controllers.GetSettings)
	protected.Get("/settings/next-numbers", controllers.NextNumbers)
	protected.Post("/settings/numbering/preview", controllers.PreviewNumbering)
	protected.Patch("/settings/numbering/:series", controllers.UpdateNumbering)
	protected.Post("/settings/numbering/:series/reset", controllers.ResetSequence)

	// Draft document
	protected.Get("/draft", controllers.GetDraft)
	protected.Patch("/draft/customer", controllers.UpdateDraftCustomer)
	protected.Patch("/draft/details", controllers.UpdateDraftDetails)
	protected.Get("/draft/totals", controllers.GetDraftTotals)
	protected.Post("/draft/items", controllers.AddLineItem)
	protected.Patch("/draft/items/:id", controllers.UpdateLineItem)
	protected.Post("/draft/items/:id/copy", controllers.CopyLineItem)
	protected.Delete("/draft/items/:id", controllers.RemoveLineItem)
	protected.Delete("/draft", controllers.ClearDraft)

	// Finalization runs under a per-request TX so the number consume and the
	// archive insert commit together.
	protected.Post("/history/invoices", middlewares.RequestTx(), controllers.FinalizeInvoice)
	protected.Post("/history/credit-notes", middlewares.RequestTx(), controllers.FinalizeCreditNote)

	// Archive reads and status edits
	protected.Get("/history", controllers.GetHistory)
	protected.Get("/history/stats", controllers.GetDashboardStats)
	protected.Get("/history/overdue", controllers.GetOverdueInvoices)
	protected.Get("/history/export", controllers.ExportHistory)
	protected.Put("/history/:id/paid", controllers.MarkAsPaid)
	protected.Put("/history/:id/unpaid", controllers.MarkAsUnpaid)
	protected.Delete("/history/:id", controllers.DeleteHistoryRecord)

	// Customer views derived from the archive
	protected.Get("/customers/recent", controllers.GetRecentCustomers)
	protected.Get("/customers/duplicates", controllers.GetDuplicateCustomers)
}
