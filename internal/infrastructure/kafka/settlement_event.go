package kafka

import "time"

type SettlementEvent struct {
	TransactionID  string    `json:"transaction_id"`
	PaymentID      string    `json:"payment_id"`
	MerchantID     string    `json:"merchant_id"`
	Status         string    `json:"status"`
	AmountFiat     string    `json:"amount_fiat"`
	Currency       string    `json:"currency"`
	AmountCrypto   string    `json:"amount_crypto"`
	CryptoCurrency string    `json:"crypto_currency"`
	ExchangeRate   string    `json:"exchange_rate"`
	QuoteSource    string    `json:"quote_source"`
	SettlementRef  string    `json:"settlement_ref"`
	WalletAddress  string    `json:"wallet_address"`
	ConfirmedAt    time.Time `json:"confirmed_at"`
}
