package transactiondto

type ConfirmTransactionInput struct {
	// PaymentIdentifier is the session id scanned from the QR payload or
	// the payment id itself. Exact match only.
	PaymentIdentifier string
	SettlementProof   string
}
