package response

import (
	"time"

	"github.com/lumipay/qr-payment-service/internal/domain"
)

type TransactionResponse struct {
	TransactionID  string    `json:"transaction_id"`
	PaymentID      string    `json:"payment_id"`
	SourceAmount   string    `json:"source_amount"`
	SourceCurrency string    `json:"source_currency"`
	ExchangeRate   string    `json:"exchange_rate"`
	TargetAmount   string    `json:"target_amount"`
	TargetCurrency string    `json:"target_currency"`
	QuoteSource    string    `json:"quote_source"`
	Status         string    `json:"status"`
	SettlementRef  string    `json:"settlement_ref,omitempty"`
	FailureReason  string    `json:"failure_reason,omitempty"`
	WalletAddress  string    `json:"wallet_address"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromDomainTransaction(tx *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		TransactionID:  tx.ID,
		PaymentID:      tx.PaymentID,
		SourceAmount:   tx.SourceAmount.String(),
		SourceCurrency: tx.SourceCurrency,
		ExchangeRate:   tx.ExchangeRate.String(),
		TargetAmount:   tx.TargetAmount.String(),
		TargetCurrency: tx.TargetCurrency,
		QuoteSource:    string(tx.QuoteSource),
		Status:         string(tx.Status),
		SettlementRef:  tx.SettlementRef,
		FailureReason:  tx.FailureReason,
		WalletAddress:  tx.WalletAddress,
		CreatedAt:      tx.CreatedAt,
	}
}
