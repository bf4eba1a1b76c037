package models

import (
	"time"

	"brickbill-backend/numbering"

	"gorm.io/datatypes"
)

// Settings holds the two independent numbering series. Credit notes never
// share a counter with invoices.
type Settings struct {
	Version    int              `json:"version"`
	Invoice    numbering.Config `json:"invoice"`
	CreditNote numbering.Config `json:"credit_note"`
}

// DefaultSettings is the numbering setup a new account starts with.
func DefaultSettings() Settings {
	return Settings{
		Version: CurrentCompanyVersion,
		Invoice: numbering.Config{
			Prefix:          "INV",
			Pattern:         "{PREFIX}-{YEAR}-{SEQ}",
			SequenceDigits:  4,
			CurrentSequence: 0,
			ResetPeriod:     numbering.ResetNever,
		},
		CreditNote: numbering.Config{
			Prefix:          "CN",
			Pattern:         "{PREFIX}-{YEAR}-{SEQ}",
			SequenceDigits:  4,
			CurrentSequence: 0,
			ResetPeriod:     numbering.ResetNever,
		},
	}
}

// SettingsRecord is the single persisted row backing the settings store.
type SettingsRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    string         `json:"-" gorm:"uniqueIndex;size:64"`
	Payload   datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	UpdatedAt time.Time      `json:"updated_at"`
}
