package notifier

import "time"

type CallbackPayload struct {
	PaymentID       string    `json:"payment_id"`
	MerchantOrderID string    `json:"merchant_order_id"`
	Status          string    `json:"status"`
	AmountFiat      string    `json:"amount_fiat"`
	AmountCrypto    string    `json:"amount_crypto"`
	Currency        string    `json:"currency"`
	SettlementRef   string    `json:"settlement_ref"`
	ConfirmedAt     time.Time `json:"confirmed_at"`
}
