package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/lumipay/qr-payment-service/internal/qrcode"
	transactiondto "github.com/lumipay/qr-payment-service/internal/usecase/dto/transaction"
	"github.com/shopspring/decimal"
)

const validProof = "0xabc123def4567890abc123def4567890"

type confirmTestKit struct {
	paymentUC *DefaultPaymentUsecase
	txUC      *DefaultTransactionUsecase
	payments  *memPaymentRepo
	txs       *memTransactionRepo
	notifier  *mockNotifier
	clock     *fakeClock
}

func newConfirmTestKit() *confirmTestKit {
	payments := newMemPaymentRepo()
	txs := newMemTransactionRepo(payments)
	notifier := &mockNotifier{}
	clock := &fakeClock{current: time.Unix(1735689600, 0)}

	paymentUC := NewDefaultPaymentUsecase(payments, &mockWalletClient{}, testMetrics, testSessionTTL, "USDT")
	paymentUC.now = clock.Now

	txUC := NewDefaultTransactionUsecase(txs, paymentUC, &mockQuoteService{}, notifier, testMetrics, "USDT", 1)
	txUC.now = clock.Now

	return &confirmTestKit{
		paymentUC: paymentUC,
		txUC:      txUC,
		payments:  payments,
		txs:       txs,
		notifier:  notifier,
		clock:     clock,
	}
}

func TestConfirmHappyPath(t *testing.T) {
	kit := newConfirmTestKit()
	payment := createTestPayment(t, kit.paymentUC)

	// Confirm through the session id a payer would scan out of the QR.
	fields, err := qrcode.Decode(payment.QRPayload)
	if err != nil {
		t.Fatalf("Decode QR payload: %v", err)
	}

	tx, err := kit.txUC.Confirm(context.Background(), &transactiondto.ConfirmTransactionInput{
		PaymentIdentifier: fields[qrcode.TagSessionID],
		SettlementProof:   validProof,
	})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	if tx.Status != domain.TransactionStatusConfirmed {
		t.Fatalf("transaction status = %s, want CONFIRMED", tx.Status)
	}
	if !tx.ExchangeRate.Equal(decimal.NewFromInt(1300)) {
		t.Fatalf("rate = %s, want 1300", tx.ExchangeRate)
	}
	if want := decimal.RequireFromString("0.76923077"); !tx.TargetAmount.Equal(want) {
		t.Fatalf("target amount = %s, want %s", tx.TargetAmount, want)
	}
	if tx.SettlementRef != validProof {
		t.Fatalf("settlement ref = %q, want %q", tx.SettlementRef, validProof)
	}
	if tx.WalletAddress != payment.WalletAddress {
		t.Fatalf("wallet address = %q, want %q", tx.WalletAddress, payment.WalletAddress)
	}

	stored, err := kit.payments.GetPaymentByID(payment.ID)
	if err != nil {
		t.Fatalf("GetPaymentByID: %v", err)
	}
	if stored.Status != domain.PaymentStatusPaid {
		t.Fatalf("payment status = %s, want PAID", stored.Status)
	}

	if kit.notifier.count() != 1 {
		t.Fatalf("notifier called %d times, want 1", kit.notifier.count())
	}
}

func TestConfirmUnknownPayment(t *testing.T) {
	kit := newConfirmTestKit()

	_, err := kit.txUC.Confirm(context.Background(), &transactiondto.ConfirmTransactionInput{
		PaymentIdentifier: "no-such-session",
		SettlementProof:   validProof,
	})
	if !errors.Is(err, domain.ErrPaymentNotFound) {
		t.Fatalf("got %v, want ErrPaymentNotFound", err)
	}
}

func TestConfirmAfterExpiry(t *testing.T) {
	kit := newConfirmTestKit()
	payment := createTestPayment(t, kit.paymentUC)

	kit.clock.Advance(testSessionTTL + time.Second)

	_, err := kit.txUC.Confirm(context.Background(), &transactiondto.ConfirmTransactionInput{
		PaymentIdentifier: payment.SessionID,
		SettlementProof:   validProof,
	})
	if !errors.Is(err, domain.ErrPaymentExpired) {
		t.Fatalf("got %v, want ErrPaymentExpired", err)
	}

	stored, _ := kit.payments.GetPaymentByID(payment.ID)
	if stored.Status != domain.PaymentStatusExpired {
		t.Fatalf("payment status = %s, want EXPIRED", stored.Status)
	}
	txs, _ := kit.txs.GetTransactionsByPaymentID(payment.ID)
	if len(txs) != 0 {
		t.Fatalf("%d transactions exist after expired confirm, want 0", len(txs))
	}
}

func TestConfirmRepeatReturnsAlreadyProcessed(t *testing.T) {
	kit := newConfirmTestKit()
	payment := createTestPayment(t, kit.paymentUC)

	input := &transactiondto.ConfirmTransactionInput{
		PaymentIdentifier: payment.SessionID,
		SettlementProof:   validProof,
	}
	if _, err := kit.txUC.Confirm(context.Background(), input); err != nil {
		t.Fatalf("first Confirm: %v", err)
	}
	if _, err := kit.txUC.Confirm(context.Background(), input); !errors.Is(err, domain.ErrAlreadyProcessed) {
		t.Fatalf("second Confirm: got %v, want ErrAlreadyProcessed", err)
	}
}

func TestConfirmInvalidProofLeavesPaymentRetryable(t *testing.T) {
	kit := newConfirmTestKit()
	payment := createTestPayment(t, kit.paymentUC)

	_, err := kit.txUC.Confirm(context.Background(), &transactiondto.ConfirmTransactionInput{
		PaymentIdentifier: payment.SessionID,
		SettlementProof:   "not a proof!",
	})
	if !errors.Is(err, domain.ErrSettlementProofInvalid) {
		t.Fatalf("got %v, want ErrSettlementProofInvalid", err)
	}

	// The payment stays PENDING with a FAILED transaction on record.
	stored, _ := kit.payments.GetPaymentByID(payment.ID)
	if stored.Status != domain.PaymentStatusPending {
		t.Fatalf("payment status = %s, want PENDING", stored.Status)
	}
	txs, _ := kit.txs.GetTransactionsByPaymentID(payment.ID)
	if len(txs) != 1 || txs[0].Status != domain.TransactionStatusFailed {
		t.Fatalf("transactions = %+v, want one FAILED record", txs)
	}

	// A retry with a valid proof succeeds until the session expires.
	tx, err := kit.txUC.Confirm(context.Background(), &transactiondto.ConfirmTransactionInput{
		PaymentIdentifier: payment.SessionID,
		SettlementProof:   validProof,
	})
	if err != nil {
		t.Fatalf("retry Confirm: %v", err)
	}
	if tx.Status != domain.TransactionStatusConfirmed {
		t.Fatalf("retry status = %s, want CONFIRMED", tx.Status)
	}
}

func TestConfirmConcurrentSingleWinner(t *testing.T) {
	kit := newConfirmTestKit()
	payment := createTestPayment(t, kit.paymentUC)

	const callers = 16
	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := kit.txUC.Confirm(context.Background(), &transactiondto.ConfirmTransactionInput{
				PaymentIdentifier: payment.SessionID,
				SettlementProof:   validProof,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrAlreadyProcessed):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Fatalf("%d confirms won, want exactly 1", wins)
	}
	if losses != callers-1 {
		t.Fatalf("%d confirms lost, want %d", losses, callers-1)
	}

	txs, _ := kit.txs.GetTransactionsByPaymentID(payment.ID)
	if len(txs) != 1 {
		t.Fatalf("%d transaction rows exist, want exactly 1", len(txs))
	}
}

func TestConfirmLosingRaceToSweepReportsExpired(t *testing.T) {
	kit := newConfirmTestKit()
	payment := createTestPayment(t, kit.paymentUC)

	// The sweep flips the session to EXPIRED after the lookup passed but
	// before the confirm's compare-and-swap runs; hook the quote call to
	// land in that window.
	kit.txUC.QuoteService = &mockQuoteService{
		QuoteFunc: func(ctx context.Context, sourceAmount decimal.Decimal) (*domain.OracleQuote, error) {
			kit.payments.casStatus(payment.ID, domain.PaymentStatusPending, domain.PaymentStatusExpired)
			rate := decimal.NewFromInt(1300)
			return &domain.OracleQuote{
				Pair:         "USDT/RUB",
				SourceAmount: sourceAmount,
				TargetAmount: sourceAmount.DivRound(rate, 8),
				Rate:         rate,
				Source:       domain.QuoteSourceLive,
				ObtainedAt:   time.Now(),
			}, nil
		},
	}

	_, err := kit.txUC.Confirm(context.Background(), &transactiondto.ConfirmTransactionInput{
		PaymentIdentifier: payment.SessionID,
		SettlementProof:   validProof,
	})
	if !errors.Is(err, domain.ErrPaymentExpired) {
		t.Fatalf("got %v, want ErrPaymentExpired", err)
	}

	txs, _ := kit.txs.GetTransactionsByPaymentID(payment.ID)
	if len(txs) != 0 {
		t.Fatalf("%d transactions exist after lost race to sweep, want 0", len(txs))
	}
}

func TestConfirmPricingUnavailable(t *testing.T) {
	kit := newConfirmTestKit()
	kit.txUC.QuoteService = &mockQuoteService{
		QuoteFunc: func(ctx context.Context, sourceAmount decimal.Decimal) (*domain.OracleQuote, error) {
			return nil, domain.ErrPricingUnavailable
		},
	}
	payment := createTestPayment(t, kit.paymentUC)

	_, err := kit.txUC.Confirm(context.Background(), &transactiondto.ConfirmTransactionInput{
		PaymentIdentifier: payment.SessionID,
		SettlementProof:   validProof,
	})
	if !errors.Is(err, domain.ErrPricingUnavailable) {
		t.Fatalf("got %v, want ErrPricingUnavailable", err)
	}

	stored, _ := kit.payments.GetPaymentByID(payment.ID)
	if stored.Status != domain.PaymentStatusPending {
		t.Fatalf("payment status = %s, want PENDING", stored.Status)
	}
}

func TestConfirmWithFallbackQuote(t *testing.T) {
	kit := newConfirmTestKit()
	kit.txUC.QuoteService = &mockQuoteService{
		QuoteFunc: func(ctx context.Context, sourceAmount decimal.Decimal) (*domain.OracleQuote, error) {
			rate := decimal.NewFromInt(90)
			return &domain.OracleQuote{
				Pair:         "USDT/RUB",
				SourceAmount: sourceAmount,
				TargetAmount: sourceAmount.DivRound(rate, 8),
				Rate:         rate,
				Source:       domain.QuoteSourceFallback,
				ObtainedAt:   time.Now(),
			}, nil
		},
	}
	payment := createTestPayment(t, kit.paymentUC)

	tx, err := kit.txUC.Confirm(context.Background(), &transactiondto.ConfirmTransactionInput{
		PaymentIdentifier: payment.SessionID,
		SettlementProof:   validProof,
	})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if tx.QuoteSource != domain.QuoteSourceFallback {
		t.Fatalf("quote source = %s, want FALLBACK", tx.QuoteSource)
	}
	if tx.Status != domain.TransactionStatusConfirmed {
		t.Fatalf("status = %s, want CONFIRMED", tx.Status)
	}
}

func TestConfirmSurvivesNotifierFailure(t *testing.T) {
	kit := newConfirmTestKit()
	kit.notifier.NotifyFunc = func(ctx context.Context, tx *domain.Transaction, payment *domain.Payment) error {
		return errors.New("broker unreachable")
	}
	payment := createTestPayment(t, kit.paymentUC)

	tx, err := kit.txUC.Confirm(context.Background(), &transactiondto.ConfirmTransactionInput{
		PaymentIdentifier: payment.SessionID,
		SettlementProof:   validProof,
	})
	if err != nil {
		t.Fatalf("Confirm must not fail on notifier errors: %v", err)
	}
	if tx.Status != domain.TransactionStatusConfirmed {
		t.Fatalf("status = %s, want CONFIRMED", tx.Status)
	}
}
