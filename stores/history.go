package stores

import (
	"time"

	"brickbill-backend/models"
	"brickbill-backend/tax"

	"gorm.io/gorm"
)

// History owns the durable archive of finalized documents. Records are
// appended with frozen snapshots and never recomputed; the only in-place edit
// is the paid/unpaid flag, and deletion is explicit.
type History struct {
	db *gorm.DB
	notifier
}

func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// SaveInvoice snapshots the assembled document into a new archive record on
// the supplied transaction, so the number consume that produced data.Number
// commits or rolls back together with it.
func (s *History) SaveInvoice(tx *gorm.DB, userID string, data models.InvoiceData, totals tax.InvoiceTotals, docType models.DocumentType) (models.HistoryRecord, error) {
	rec, err := models.NewHistoryRecord(data, totals, docType, time.Now().UTC())
	if err != nil {
		return models.HistoryRecord{}, err
	}
	rec.UserID = userID
	if err := tx.Create(&rec).Error; err != nil {
		return models.HistoryRecord{}, err
	}
	s.publishTx(tx, Event{Store: "history", Action: "save:" + string(docType), UserID: userID})
	return rec, nil
}

// List returns the user's archive, newest first.
func (s *History) List(userID string) ([]models.HistoryRecord, error) {
	var records []models.HistoryRecord
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error
	return records, err
}

func (s *History) MarkAsPaid(userID, id string) error {
	return s.setStatus(userID, id, models.StatusPaid)
}

func (s *History) MarkAsUnpaid(userID, id string) error {
	return s.setStatus(userID, id, models.StatusUnpaid)
}

// setStatus flips the paid flag on the matching record. An absent id is a
// silent no-op: the caller may race a concurrent deletion.
func (s *History) setStatus(userID, id string, status models.PaymentStatus) error {
	res := s.db.Model(&models.HistoryRecord{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.publish(Event{Store: "history", Action: "status:" + string(status), UserID: userID})
	}
	return nil
}

// Delete removes a record permanently; absent ids are a silent no-op.
func (s *History) Delete(userID, id string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.HistoryRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.publish(Event{Store: "history", Action: "delete", UserID: userID})
	}
	return nil
}
