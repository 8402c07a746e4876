package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusExpired PaymentStatus = "EXPIRED"
)

// Payment is a merchant charge request. Status moves PENDING->PAID or
// PENDING->EXPIRED only; both end states are terminal. Records are never
// deleted, they are retained for audit.
type Payment struct {
	ID              string
	SessionID       string
	MerchantID      string
	MerchantOrderID string
	AmountFiat      decimal.Decimal
	Currency        string
	Concept         string
	WalletAddress   string
	QRPayload       string
	CallbackURL     string
	Status          PaymentStatus
	ExpiresAt       time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p *Payment) IsExpiredAt(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
