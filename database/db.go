package database

import (
	"fmt"
	"os"

	"brickbill-backend/models"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Connect() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file, using process environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Europe/London",
		envOr("DB_HOST", "db"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), envOr("DB_PORT", "5432"))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}
	logrus.WithField("host", envOr("DB_HOST", "db")).Info("database connected")
}

func AutoMigrate() {
	err := DB.AutoMigrate(
		&models.User{}, &models.CompanyRecord{}, &models.SettingsRecord{},
		&models.DraftRecord{}, &models.HistoryRecord{}, &models.IdempotencyKey{})
	if err != nil {
		logrus.WithError(err).Fatal("auto-migrate failed")
	}
}
