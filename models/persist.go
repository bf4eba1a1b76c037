package models

import (
	"encoding/json"

	"brickbill-backend/numbering"
	"brickbill-backend/tax"

	"gorm.io/datatypes"
)

// The Decode* functions are the load side of each single-row store. They start
// from the named defaults and overlay whatever the payload carries, so records
// written by older app versions (missing fields, absent version stamp) load
// cleanly instead of failing. A payload that does not parse at all is treated
// the same as no payload.

func DecodeInvoicerDetails(raw datatypes.JSON) InvoicerDetails {
	details := DefaultInvoicerDetails()
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &details)
	}
	if details.CisStatus == "" {
		details.CisStatus = tax.CisNotApplicable
	}
	details.Version = CurrentCompanyVersion
	return details
}

func DecodeSettings(raw datatypes.JSON) Settings {
	settings := DefaultSettings()
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &settings)
	}
	settings.Invoice = repairConfig(settings.Invoice, DefaultSettings().Invoice)
	settings.CreditNote = repairConfig(settings.CreditNote, DefaultSettings().CreditNote)
	settings.Version = CurrentCompanyVersion
	return settings
}

// repairConfig backfills fields a legacy settings payload may lack. The
// counter itself is never touched: it only moves through consume.
func repairConfig(cfg, def numbering.Config) numbering.Config {
	if cfg.Pattern == "" {
		cfg.Pattern = def.Pattern
	}
	if cfg.SequenceDigits < 1 {
		cfg.SequenceDigits = def.SequenceDigits
	}
	if cfg.ResetPeriod == "" {
		cfg.ResetPeriod = numbering.ResetNever
	}
	if cfg.CurrentSequence < 0 {
		cfg.CurrentSequence = 0
	}
	return cfg
}

func DecodeDraft(raw datatypes.JSON) Draft {
	draft := DefaultDraft()
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &draft)
	}
	if draft.Items == nil {
		draft.Items = []tax.LineItem{}
	}
	draft.Version = CurrentCompanyVersion
	return draft
}

// Encode marshals a store payload for its jsonb column.
func Encode(v any) (datatypes.JSON, error) {
	blob, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(blob), nil
}
