package domain

import "context"

// SettlementNotifier posts a confirmed or failed transaction to the external
// ledger/liquidation side. Implementations are one-shot and best-effort; the
// interface is narrow so a durable outbox can be slotted in behind it without
// touching callers.
type SettlementNotifier interface {
	Notify(ctx context.Context, tx *Transaction, payment *Payment) error
}
