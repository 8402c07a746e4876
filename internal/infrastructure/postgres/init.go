package postgres

import (
	"log"

	"github.com/lumipay/qr-payment-service/internal/config"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.PaymentConfig) *gorm.DB {
	dsn := cfg.PaymentDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.PaymentModel{}, &models.TransactionModel{}, &models.QuoteHistoryModel{})

	return db
}
