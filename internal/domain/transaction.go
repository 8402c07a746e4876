package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusConfirmed TransactionStatus = "CONFIRMED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is a priced, settlement-attempted transfer tied to a Payment.
// Rate and target amount are immutable once the transaction is CONFIRMED.
type Transaction struct {
	ID                    string
	PaymentID             string
	SourceAmount          decimal.Decimal
	SourceCurrency        string
	ExchangeRate          decimal.Decimal
	TargetAmount          decimal.Decimal
	TargetCurrency        string
	QuoteSource           QuoteSource
	Status                TransactionStatus
	SettlementRef         string
	FailureReason         string
	ConfirmationCount     int32
	RequiredConfirmations int32
	WalletAddress         string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
