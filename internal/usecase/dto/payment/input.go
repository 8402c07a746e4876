package paymentdto

import "github.com/shopspring/decimal"

type CreatePaymentInput struct {
	MerchantParams
	AmountFiat  decimal.Decimal
	Currency    string
	Concept     string
	CallbackURL string
}

type MerchantParams struct {
	MerchantID      string
	MerchantOrderID string
}
