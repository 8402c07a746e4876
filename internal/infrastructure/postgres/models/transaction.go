package models

import (
	"time"

	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionModel struct {
	ID                    string                   `gorm:"primaryKey;type:uuid"`
	PaymentID             string                   `gorm:"type:uuid;index;not null"`
	Payment               PaymentModel             `gorm:"foreignKey:PaymentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	SourceAmount          decimal.Decimal          `gorm:"type:numeric(20,8);not null"`
	SourceCurrency        string                   `gorm:"not null"`
	ExchangeRate          decimal.Decimal          `gorm:"type:numeric(20,8);not null"`
	TargetAmount          decimal.Decimal          `gorm:"type:numeric(20,8);not null"`
	TargetCurrency        string                   `gorm:"not null"`
	QuoteSource           domain.QuoteSource       `gorm:"not null"`
	Status                domain.TransactionStatus `gorm:"index;not null"`
	SettlementRef         string
	FailureReason         string
	ConfirmationCount     int32
	RequiredConfirmations int32
	WalletAddress         string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (TransactionModel) TableName() string {
	return "transactions"
}
