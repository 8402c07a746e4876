package domain

type TransactionRepository interface {
	// CreateTransaction records a transaction without touching the payment.
	// Used for FAILED attempts so the payment stays retryable.
	CreateTransaction(tx *Transaction) error
	// ConfirmPayment atomically creates the CONFIRMED transaction and flips
	// the owning payment PENDING->PAID in one storage transaction. When the
	// conditional status update matches no row the whole operation aborts
	// with ErrAlreadyProcessed, so exactly one of N concurrent confirms wins.
	ConfirmPayment(tx *Transaction) error
	GetTransactionByID(txID string) (*Transaction, error)
	GetTransactionsByPaymentID(paymentID string) ([]*Transaction, error)
}
