package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/metrics"
	"github.com/shopspring/decimal"
)

// prometheus collectors register globally, so the whole test binary shares
// one instance.
var testMetrics = metrics.NewPaymentMetrics()

type memPaymentRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Payment
	bySession map[string]string
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{
		byID:      make(map[string]*domain.Payment),
		bySession: make(map[string]string),
	}
}

func (r *memPaymentRepo) CreatePayment(payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[payment.ID]; ok {
		return errors.New("duplicate payment id")
	}
	if _, ok := r.bySession[payment.SessionID]; ok {
		return errors.New("duplicate session id")
	}
	stored := *payment
	r.byID[payment.ID] = &stored
	r.bySession[payment.SessionID] = payment.ID
	return nil
}

func (r *memPaymentRepo) GetPaymentByID(paymentID string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.byID[paymentID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	copied := *payment
	return &copied, nil
}

func (r *memPaymentRepo) GetPaymentBySessionID(sessionID string) (*domain.Payment, error) {
	r.mu.Lock()
	paymentID, ok := r.bySession[sessionID]
	r.mu.Unlock()
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return r.GetPaymentByID(paymentID)
}

func (r *memPaymentRepo) GetPaymentsByMerchantID(merchantID string, page, limit int64) ([]*domain.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var payments []*domain.Payment
	for _, payment := range r.byID {
		if payment.MerchantID == merchantID {
			copied := *payment
			payments = append(payments, &copied)
		}
	}
	return payments, int64(len(payments)), nil
}

func (r *memPaymentRepo) UpdateQRPayload(paymentID, qrPayload string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.byID[paymentID]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	payment.QRPayload = qrPayload
	return nil
}

func (r *memPaymentRepo) MarkExpired(paymentID string) (bool, error) {
	return r.casStatus(paymentID, domain.PaymentStatusPending, domain.PaymentStatusExpired), nil
}

func (r *memPaymentRepo) ExpireStale(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, payment := range r.byID {
		if payment.Status == domain.PaymentStatusPending && now.After(payment.ExpiresAt) {
			payment.Status = domain.PaymentStatusExpired
			count++
		}
	}
	return count, nil
}

func (r *memPaymentRepo) casStatus(paymentID string, from, to domain.PaymentStatus) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.byID[paymentID]
	if !ok || payment.Status != from {
		return false
	}
	payment.Status = to
	return true
}

func (r *memPaymentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type memTransactionRepo struct {
	mu       sync.Mutex
	payments *memPaymentRepo
	txs      map[string]*domain.Transaction
}

func newMemTransactionRepo(payments *memPaymentRepo) *memTransactionRepo {
	return &memTransactionRepo{
		payments: payments,
		txs:      make(map[string]*domain.Transaction),
	}
}

func (r *memTransactionRepo) CreateTransaction(tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *tx
	r.txs[tx.ID] = &stored
	return nil
}

// ConfirmPayment mirrors the storage-level compare-and-swap: the flip and
// the insert happen under one lock, and a lost race writes nothing. A lost
// race re-reads the payment so a sweep-expired session is reported as
// expired, not as already paid.
func (r *memTransactionRepo) ConfirmPayment(tx *domain.Transaction) error {
	if !r.payments.casStatus(tx.PaymentID, domain.PaymentStatusPending, domain.PaymentStatusPaid) {
		payment, err := r.payments.GetPaymentByID(tx.PaymentID)
		if err != nil {
			return err
		}
		if payment.Status == domain.PaymentStatusExpired {
			return domain.ErrPaymentExpired
		}
		return domain.ErrAlreadyProcessed
	}
	return r.CreateTransaction(tx)
}

func (r *memTransactionRepo) GetTransactionByID(txID string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[txID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	copied := *tx
	return &copied, nil
}

func (r *memTransactionRepo) GetTransactionsByPaymentID(paymentID string) ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var txs []*domain.Transaction
	for _, tx := range r.txs {
		if tx.PaymentID == paymentID {
			copied := *tx
			txs = append(txs, &copied)
		}
	}
	return txs, nil
}

type mockWalletClient struct {
	GetSettlementAddressFunc func(merchantID string) (string, error)
}

func (m *mockWalletClient) GetSettlementAddress(merchantID string) (string, error) {
	if m.GetSettlementAddressFunc != nil {
		return m.GetSettlementAddressFunc(merchantID)
	}
	return "TXk4fGb8mDsQ9pW2vYhZr3cL1nA7eJqK5o", nil
}

type mockQuoteService struct {
	QuoteFunc func(ctx context.Context, sourceAmount decimal.Decimal) (*domain.OracleQuote, error)
}

func (m *mockQuoteService) Quote(ctx context.Context, sourceAmount decimal.Decimal) (*domain.OracleQuote, error) {
	if m.QuoteFunc != nil {
		return m.QuoteFunc(ctx, sourceAmount)
	}
	rate := decimal.NewFromInt(1300)
	return &domain.OracleQuote{
		Pair:         "USDT/RUB",
		SourceAmount: sourceAmount,
		TargetAmount: sourceAmount.DivRound(rate, 8),
		Rate:         rate,
		Source:       domain.QuoteSourceLive,
		ObtainedAt:   time.Now(),
	}, nil
}

type mockNotifier struct {
	mu         sync.Mutex
	NotifyFunc func(ctx context.Context, tx *domain.Transaction, payment *domain.Payment) error
	notified   []*domain.Transaction
}

func (m *mockNotifier) Notify(ctx context.Context, tx *domain.Transaction, payment *domain.Payment) error {
	m.mu.Lock()
	m.notified = append(m.notified, tx)
	m.mu.Unlock()
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, tx, payment)
	}
	return nil
}

func (m *mockNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notified)
}
