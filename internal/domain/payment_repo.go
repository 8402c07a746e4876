package domain

import "time"

type PaymentRepository interface {
	CreatePayment(payment *Payment) error
	GetPaymentByID(paymentID string) (*Payment, error)
	// GetPaymentBySessionID matches the exact session identifier only.
	GetPaymentBySessionID(sessionID string) (*Payment, error)
	GetPaymentsByMerchantID(merchantID string, page, limit int64) ([]*Payment, int64, error)
	UpdateQRPayload(paymentID, qrPayload string) error
	// MarkExpired flips PENDING->EXPIRED as a conditional update.
	// It is a no-op returning false if the payment left PENDING already.
	MarkExpired(paymentID string) (bool, error)
	ExpireStale(now time.Time) (int64, error)
}
