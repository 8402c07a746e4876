package notifier

import (
	"context"
	"time"

	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/kafka"
)

// KafkaSettlementNotifier posts transaction outcomes to the external
// ledger/liquidation side over the settlement-events topic and fires the
// merchant callback when one is registered. One-shot and best-effort; a
// durable outbox can replace it behind domain.SettlementNotifier.
type KafkaSettlementNotifier struct {
	publisher *kafka.SettlementPublisher
	timeout   time.Duration
}

func NewKafkaSettlementNotifier(publisher *kafka.SettlementPublisher, timeout time.Duration) *KafkaSettlementNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &KafkaSettlementNotifier{
		publisher: publisher,
		timeout:   timeout,
	}
}

func (n *KafkaSettlementNotifier) Notify(ctx context.Context, tx *domain.Transaction, payment *domain.Payment) error {
	if payment.CallbackURL != "" {
		SendCallback(payment.CallbackURL, CallbackPayload{
			PaymentID:       payment.ID,
			MerchantOrderID: payment.MerchantOrderID,
			Status:          string(tx.Status),
			AmountFiat:      tx.SourceAmount.String(),
			AmountCrypto:    tx.TargetAmount.String(),
			Currency:        tx.SourceCurrency,
			SettlementRef:   tx.SettlementRef,
			ConfirmedAt:     tx.UpdatedAt,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	return n.publisher.Publish(ctx, kafka.SettlementEvent{
		TransactionID:  tx.ID,
		PaymentID:      tx.PaymentID,
		MerchantID:     payment.MerchantID,
		Status:         string(tx.Status),
		AmountFiat:     tx.SourceAmount.String(),
		Currency:       tx.SourceCurrency,
		AmountCrypto:   tx.TargetAmount.String(),
		CryptoCurrency: tx.TargetCurrency,
		ExchangeRate:   tx.ExchangeRate.String(),
		QuoteSource:    string(tx.QuoteSource),
		SettlementRef:  tx.SettlementRef,
		WalletAddress:  tx.WalletAddress,
		ConfirmedAt:    tx.UpdatedAt,
	})
}
