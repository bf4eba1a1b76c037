package stores

import (
	"errors"
	"time"

	"brickbill-backend/models"
	"brickbill-backend/tax"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Draft owns the in-progress document. Items are mutated in place by field and
// never shared across documents; copying always mints fresh ids.
type Draft struct {
	db *gorm.DB
	notifier
}

func NewDraft(db *gorm.DB) *Draft {
	return &Draft{db: db}
}

func (s *Draft) Get(userID string) (models.Draft, error) {
	var rec models.DraftRecord
	err := s.db.Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultDraft(), nil
	}
	if err != nil {
		return models.Draft{}, err
	}
	return models.DecodeDraft(rec.Payload), nil
}

// ApplyCustomer merges a field patch into the draft's customer block.
func (s *Draft) ApplyCustomer(userID string, updates map[string]any) (models.Draft, error) {
	return s.mutate(userID, "customer", func(d *models.Draft) error {
		merged, err := mergeInto(d.Customer, updates)
		if err != nil {
			return err
		}
		d.Customer = merged
		return nil
	})
}

// ApplyDetails merges a field patch into the document-level fields.
func (s *Draft) ApplyDetails(userID string, updates map[string]any) (models.Draft, error) {
	return s.mutate(userID, "details", func(d *models.Draft) error {
		merged, err := mergeInto(d.Details, updates)
		if err != nil {
			return err
		}
		d.Details = merged
		return nil
	})
}

// AddItem appends a fresh zero-amount line item and returns it.
func (s *Draft) AddItem(userID string) (tax.LineItem, error) {
	item := tax.LineItem{
		ID:          uuid.NewString(),
		Quantity:    decimal.NewFromInt(1),
		NetAmount:   decimal.Zero,
		VatRate:     tax.VatStandard,
		CisCategory: tax.CisNotRelevant,
	}
	_, err := s.mutate(userID, "item:add", func(d *models.Draft) error {
		d.Items = append(d.Items, item)
		return nil
	})
	if err != nil {
		return tax.LineItem{}, err
	}
	return item, nil
}

// UpdateItem merges a field patch into the matching item. The id field itself
// is not patchable. A missing item is a silent no-op.
func (s *Draft) UpdateItem(userID, itemID string, updates map[string]any) (models.Draft, error) {
	delete(updates, "id")
	return s.mutate(userID, "item:update", func(d *models.Draft) error {
		for i, item := range d.Items {
			if item.ID != itemID {
				continue
			}
			merged, err := mergeInto(item, updates)
			if err != nil {
				return err
			}
			merged.ID = itemID
			d.Items[i] = merged
			return nil
		}
		return nil
	})
}

// RemoveItem drops the matching item; missing ids are a silent no-op.
func (s *Draft) RemoveItem(userID, itemID string) (models.Draft, error) {
	return s.mutate(userID, "item:remove", func(d *models.Draft) error {
		kept := d.Items[:0]
		for _, item := range d.Items {
			if item.ID != itemID {
				kept = append(kept, item)
			}
		}
		d.Items = kept
		return nil
	})
}

// CopyItem duplicates an existing item under a new id, for "add another like
// this" flows. Missing ids are a silent no-op.
func (s *Draft) CopyItem(userID, itemID string) (models.Draft, error) {
	return s.mutate(userID, "item:copy", func(d *models.Draft) error {
		for _, item := range d.Items {
			if item.ID == itemID {
				dup := item
				dup.ID = uuid.NewString()
				d.Items = append(d.Items, dup)
				return nil
			}
		}
		return nil
	})
}

// Clear restores the named default draft.
func (s *Draft) Clear(userID string) (models.Draft, error) {
	draft := models.DefaultDraft()
	if err := s.save(userID, draft); err != nil {
		return models.Draft{}, err
	}
	s.publish(Event{Store: "draft", Action: "clear", UserID: userID})
	return draft, nil
}

// Totals binds the totals engine to the current item list under the given CIS
// status. Pure read; nothing is persisted.
func (s *Draft) Totals(userID string, cisStatus tax.CisStatus) (tax.InvoiceTotals, error) {
	draft, err := s.Get(userID)
	if err != nil {
		return tax.InvoiceTotals{}, err
	}
	return tax.ComputeTotals(draft.Items, cisStatus), nil
}

func (s *Draft) mutate(userID, action string, fn func(*models.Draft) error) (models.Draft, error) {
	draft, err := s.Get(userID)
	if err != nil {
		return models.Draft{}, err
	}
	if err := fn(&draft); err != nil {
		return models.Draft{}, err
	}
	if err := s.save(userID, draft); err != nil {
		return models.Draft{}, err
	}
	s.publish(Event{Store: "draft", Action: action, UserID: userID})
	return draft, nil
}

func (s *Draft) save(userID string, draft models.Draft) error {
	payload, err := models.Encode(draft)
	if err != nil {
		return err
	}

	var rec models.DraftRecord
	err = s.db.Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = models.DraftRecord{UserID: userID, Payload: payload}
		return s.db.Create(&rec).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&rec).Updates(map[string]any{
		"payload":    payload,
		"updated_at": time.Now().UTC(),
	}).Error
}
