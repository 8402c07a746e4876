package models

import (
	"time"

	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/shopspring/decimal"
)

type PaymentModel struct {
	ID              string               `gorm:"primaryKey;type:uuid"`
	SessionID       string               `gorm:"uniqueIndex;not null"`
	MerchantID      string               `gorm:"index;not null"`
	MerchantOrderID string
	AmountFiat      decimal.Decimal      `gorm:"type:numeric(20,8);not null"`
	Currency        string               `gorm:"not null"`
	Concept         string
	WalletAddress   string
	QRPayload       string
	CallbackURL     string
	Status          domain.PaymentStatus `gorm:"index:idx_payment_status_expires;not null"`
	ExpiresAt       time.Time            `gorm:"index:idx_payment_status_expires"`
	CreatedAt       time.Time            `gorm:"index"`
	UpdatedAt       time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}
