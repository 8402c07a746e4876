package models

import (
	"time"

	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/shopspring/decimal"
)

// QuoteHistoryModel is append-only; rows are never updated or deleted.
type QuoteHistoryModel struct {
	ID         uint               `gorm:"primaryKey"`
	Pair       string             `gorm:"index;not null"`
	Rate       decimal.Decimal    `gorm:"type:numeric(20,8);not null"`
	Source     domain.QuoteSource `gorm:"not null"`
	ObtainedAt time.Time          `gorm:"index;not null"`
}

func (QuoteHistoryModel) TableName() string {
	return "quote_history"
}
