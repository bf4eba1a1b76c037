package middlewares

import (
	"brickbill-backend/database"
	"brickbill-backend/stores"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RequestTx opens a per-request DB transaction. Run it on routes where a
// document-number consume and an archive insert must commit or roll back as
// one unit. Order: AFTER IsAuthenticatedHeader() and AFTER Idempotency() (so
// idempotency records aren't tied to the handler TX).
func RequestTx() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to begin transaction")
		}

		// Store events raised on this handle are held until the commit lands,
		// so a rolled-back mutation is never observed by subscribers.
		tx, events := stores.QueueEvents(tx)

		// Ensure we always cleanup.
		defer func() {
			if r := recover(); r != nil {
				_ = tx.Rollback()
				panic(r) // re-panic after rollback so Fiber's handler can catch
			}
			if err != nil {
				_ = tx.Rollback()
				return
			}
			if e := tx.Commit().Error; e != nil {
				logrus.WithError(e).Error("tx commit failed")
				err = fiber.NewError(fiber.StatusInternalServerError, "transaction commit failed")
				return
			}
			events.Flush()
		}()

		// Make the TX available to handlers via database.GetRequestDB(c).
		c.Locals("tx", tx)

		err = c.Next()
		return err
	}
}
