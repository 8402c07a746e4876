package response

import (
	"time"

	"github.com/lumipay/qr-payment-service/internal/domain"
)

type PaymentResponse struct {
	PaymentID       string    `json:"payment_id"`
	SessionID       string    `json:"session_id"`
	MerchantID      string    `json:"merchant_id"`
	MerchantOrderID string    `json:"merchant_order_id,omitempty"`
	AmountFiat      string    `json:"amount_fiat"`
	Currency        string    `json:"currency"`
	Concept         string    `json:"concept,omitempty"`
	WalletAddress   string    `json:"wallet_address"`
	QRPayload       string    `json:"qr_payload"`
	Status          string    `json:"status"`
	ExpiresAt       time.Time `json:"expires_at"`
	CreatedAt       time.Time `json:"created_at"`
}

type PaymentListResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int64              `json:"total"`
	Page     int64              `json:"page"`
	Limit    int64              `json:"limit"`
}

func FromDomainPayment(payment *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		PaymentID:       payment.ID,
		SessionID:       payment.SessionID,
		MerchantID:      payment.MerchantID,
		MerchantOrderID: payment.MerchantOrderID,
		AmountFiat:      payment.AmountFiat.String(),
		Currency:        payment.Currency,
		Concept:         payment.Concept,
		WalletAddress:   payment.WalletAddress,
		QRPayload:       payment.QRPayload,
		Status:          string(payment.Status),
		ExpiresAt:       payment.ExpiresAt,
		CreatedAt:       payment.CreatedAt,
	}
}
