package request

type CreatePaymentRequest struct {
	MerchantID      string `json:"merchant_id"`
	MerchantOrderID string `json:"merchant_order_id"`
	AmountFiat      string `json:"amount_fiat"`
	Currency        string `json:"currency"`
	Concept         string `json:"concept"`
	CallbackURL     string `json:"callback_url"`
}
