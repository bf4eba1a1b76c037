package stores_test

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"brickbill-backend/models"
	"brickbill-backend/stores"
	"brickbill-backend/tax"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// connectTestDB dials the database named by the DB_* env vars. Tests using it
// are gated the same way as the rest of the suite's integration tests.
func connectTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires postgres)")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.AutoMigrate(&models.SettingsRecord{}, &models.HistoryRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestConsumeAndSave_OneUnitOfWork(t *testing.T) {
	db := connectTestDB(t)
	userID := fmt.Sprintf("it-%d", time.Now().UnixNano())

	settings := stores.NewSettings(db)
	historyStore := stores.NewHistory(db)
	now := time.Now()

	// Happy path: consume + archive commit together.
	var number string
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		number, err = settings.ConsumeInvoiceNumber(tx, userID, now)
		if err != nil {
			return err
		}
		data := models.InvoiceData{
			Number:   number,
			Customer: models.CustomerDetails{Name: "ABC Ltd"},
			Details:  models.InvoiceDetails{InvoiceDate: now, PaymentTermsDays: 30},
		}
		_, err = historyStore.SaveInvoice(tx, userID, data, tax.InvoiceTotals{}, models.DocumentInvoice)
		return err
	})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	// A failed archive rolls the counter back with it.
	rollbackErr := fmt.Errorf("archive write refused")
	err = db.Transaction(func(tx *gorm.DB) error {
		if _, err := settings.ConsumeInvoiceNumber(tx, userID, now); err != nil {
			return err
		}
		return rollbackErr
	})
	if err == nil {
		t.Fatal("expected rollback error")
	}

	// The next preview continues the committed series without a gap or dup.
	next, err := settings.NextInvoiceNumber(userID, now)
	if err != nil {
		t.Fatalf("next number: %v", err)
	}
	if next == number {
		t.Errorf("preview repeated a consumed number: %q", next)
	}

	loaded, err := settings.Get(userID)
	if err != nil {
		t.Fatalf("settings reload: %v", err)
	}
	if loaded.Invoice.CurrentSequence != 1 {
		t.Errorf("CurrentSequence = %d, want 1 (rolled-back consume must not stick)", loaded.Invoice.CurrentSequence)
	}

	records, err := historyStore.List(userID)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if len(records) != 1 || records[0].DocumentNumber != number {
		t.Errorf("archive = %d records, want exactly the committed one (%q)", len(records), number)
	}
}
