package utils

import "github.com/shopspring/decimal"

// Round2 rounds a monetary value to 2 decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
