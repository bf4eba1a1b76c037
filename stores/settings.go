package stores

import (
	"errors"
	"fmt"
	"time"

	"brickbill-backend/models"
	"brickbill-backend/numbering"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Series names one of the two independent numbering counters.
type Series string

const (
	SeriesInvoice    Series = "invoice"
	SeriesCreditNote Series = "credit_note"
)

// Settings owns the numbering configuration and counters. Previews never
// mutate; Consume* are the only paths that advance a counter, and they run
// inside the caller's transaction so a failed archive rolls the counter back
// with it. That makes a duplicate number structurally impossible.
type Settings struct {
	db *gorm.DB
	notifier
}

func NewSettings(db *gorm.DB) *Settings {
	return &Settings{db: db}
}

func (s *Settings) Get(userID string) (models.Settings, error) {
	return s.load(s.db, userID, false)
}

// ApplyConfig merges a field patch into one series' config. The counter is
// stripped from the patch: it only moves through Consume or ResetSequence.
func (s *Settings) ApplyConfig(userID string, series Series, updates map[string]any) (models.Settings, error) {
	delete(updates, "current_sequence")

	settings, err := s.Get(userID)
	if err != nil {
		return models.Settings{}, err
	}
	switch series {
	case SeriesInvoice:
		settings.Invoice, err = mergeInto(settings.Invoice, updates)
	case SeriesCreditNote:
		settings.CreditNote, err = mergeInto(settings.CreditNote, updates)
	default:
		return models.Settings{}, fmt.Errorf("unknown series %q", series)
	}
	if err != nil {
		return models.Settings{}, err
	}
	if err := s.save(s.db, userID, settings); err != nil {
		return models.Settings{}, err
	}
	s.publish(Event{Store: "settings", Action: "update", UserID: userID})
	return settings, nil
}

// NextInvoiceNumber previews the number the next consume would emit.
func (s *Settings) NextInvoiceNumber(userID string, now time.Time) (string, error) {
	settings, err := s.Get(userID)
	if err != nil {
		return "", err
	}
	return numbering.Generate(settings.Invoice, now), nil
}

func (s *Settings) NextCreditNoteNumber(userID string, now time.Time) (string, error) {
	settings, err := s.Get(userID)
	if err != nil {
		return "", err
	}
	return numbering.Generate(settings.CreditNote, now), nil
}

// ConsumeInvoiceNumber generates the next invoice number and commits the
// incremented counter, all on the supplied transaction.
func (s *Settings) ConsumeInvoiceNumber(tx *gorm.DB, userID string, now time.Time) (string, error) {
	return s.consume(tx, userID, SeriesInvoice, now)
}

func (s *Settings) ConsumeCreditNoteNumber(tx *gorm.DB, userID string, now time.Time) (string, error) {
	return s.consume(tx, userID, SeriesCreditNote, now)
}

func (s *Settings) consume(tx *gorm.DB, userID string, series Series, now time.Time) (string, error) {
	settings, err := s.load(tx, userID, true)
	if err != nil {
		return "", err
	}

	var number string
	switch series {
	case SeriesInvoice:
		number = numbering.Generate(settings.Invoice, now)
		settings.Invoice = numbering.Increment(settings.Invoice, now)
	case SeriesCreditNote:
		number = numbering.Generate(settings.CreditNote, now)
		settings.CreditNote = numbering.Increment(settings.CreditNote, now)
	default:
		return "", fmt.Errorf("unknown series %q", series)
	}

	if err := s.save(tx, userID, settings); err != nil {
		return "", err
	}
	s.publishTx(tx, Event{Store: "settings", Action: "consume:" + string(series), UserID: userID})
	return number, nil
}

// ResetSequence zeroes one counter. Explicit and destructive; the next consume
// starts the series over at 1.
func (s *Settings) ResetSequence(userID string, series Series) (models.Settings, error) {
	settings, err := s.Get(userID)
	if err != nil {
		return models.Settings{}, err
	}
	switch series {
	case SeriesInvoice:
		settings.Invoice.CurrentSequence = 0
		settings.Invoice.LastPeriod = ""
	case SeriesCreditNote:
		settings.CreditNote.CurrentSequence = 0
		settings.CreditNote.LastPeriod = ""
	default:
		return models.Settings{}, fmt.Errorf("unknown series %q", series)
	}
	if err := s.save(s.db, userID, settings); err != nil {
		return models.Settings{}, err
	}
	s.publish(Event{Store: "settings", Action: "reset:" + string(series), UserID: userID})
	return settings, nil
}

// load reads the user's settings row, locking it when the caller is about to
// consume a number so concurrent finalizes serialize on the counter.
func (s *Settings) load(db *gorm.DB, userID string, forUpdate bool) (models.Settings, error) {
	q := db
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rec models.SettingsRecord
	err := q.Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings := models.DefaultSettings()
		if !forUpdate {
			return settings, nil
		}
		// Consume needs a row to lock; create it on first use.
		if err := s.save(db, userID, settings); err != nil {
			return models.Settings{}, err
		}
		return settings, nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	return models.DecodeSettings(rec.Payload), nil
}

func (s *Settings) save(db *gorm.DB, userID string, settings models.Settings) error {
	payload, err := models.Encode(settings)
	if err != nil {
		return err
	}

	var rec models.SettingsRecord
	err = db.Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = models.SettingsRecord{UserID: userID, Payload: payload}
		return db.Create(&rec).Error
	}
	if err != nil {
		return err
	}
	return db.Model(&rec).Updates(map[string]any{
		"payload":    payload,
		"updated_at": time.Now().UTC(),
	}).Error
}
