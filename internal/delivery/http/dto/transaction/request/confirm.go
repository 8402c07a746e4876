package request

type ConfirmTransactionRequest struct {
	PaymentID       string `json:"payment_id"`
	SettlementProof string `json:"settlement_proof"`
}
