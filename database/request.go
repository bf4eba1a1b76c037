package database

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetRequestDB returns the per-request transaction when middlewares.RequestTx
// opened one, else the shared connection. Handlers that must be atomic with a
// number consume run under RequestTx and see the same tx everywhere.
func GetRequestDB(c *fiber.Ctx) *gorm.DB {
	if v := c.Locals("tx"); v != nil {
		if tx, ok := v.(*gorm.DB); ok && tx != nil {
			return tx
		}
	}
	return DB
}
