package stores

import (
	"errors"
	"time"

	"brickbill-backend/models"

	"gorm.io/gorm"
)

// Company owns the invoicer's profile. One persisted row per user; a user
// without a row reads as the named defaults.
type Company struct {
	db *gorm.DB
	notifier
}

func NewCompany(db *gorm.DB) *Company {
	return &Company{db: db}
}

func (s *Company) Get(userID string) (models.InvoicerDetails, error) {
	var rec models.CompanyRecord
	err := s.db.Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultInvoicerDetails(), nil
	}
	if err != nil {
		return models.InvoicerDetails{}, err
	}
	return models.DecodeInvoicerDetails(rec.Payload), nil
}

// Apply merges a field patch into the profile and persists the result. No
// validation happens here; the request layer owns that.
func (s *Company) Apply(userID string, updates map[string]any) (models.InvoicerDetails, error) {
	details, err := s.Get(userID)
	if err != nil {
		return models.InvoicerDetails{}, err
	}
	merged, err := mergeInto(details, updates)
	if err != nil {
		return models.InvoicerDetails{}, err
	}
	if err := s.save(userID, merged); err != nil {
		return models.InvoicerDetails{}, err
	}
	s.publish(Event{Store: "company", Action: "update", UserID: userID})
	return merged, nil
}

// Clear restores the exact default profile.
func (s *Company) Clear(userID string) (models.InvoicerDetails, error) {
	details := models.DefaultInvoicerDetails()
	if err := s.save(userID, details); err != nil {
		return models.InvoicerDetails{}, err
	}
	s.publish(Event{Store: "company", Action: "clear", UserID: userID})
	return details, nil
}

func (s *Company) save(userID string, details models.InvoicerDetails) error {
	payload, err := models.Encode(details)
	if err != nil {
		return err
	}

	var rec models.CompanyRecord
	err = s.db.Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = models.CompanyRecord{UserID: userID, Payload: payload}
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
