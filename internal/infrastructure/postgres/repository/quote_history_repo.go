package repository

import (
	"time"

	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DefaultQuoteHistoryRepository struct {
	DB *gorm.DB
}

func NewDefaultQuoteHistoryRepository(db *gorm.DB) *DefaultQuoteHistoryRepository {
	return &DefaultQuoteHistoryRepository{DB: db}
}

func (r *DefaultQuoteHistoryRepository) Append(pair string, rate decimal.Decimal, source domain.QuoteSource, obtainedAt time.Time) error {
	return r.DB.Create(&models.QuoteHistoryModel{
		Pair:       pair,
		Rate:       rate,
		Source:     source,
		ObtainedAt: obtainedAt,
	}).Error
}
