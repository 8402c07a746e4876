package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/metrics"
	transactiondto "github.com/lumipay/qr-payment-service/internal/usecase/dto/transaction"
)

// settlementProofPattern is the minimal shape check for a chain transaction
// reference. Real on-chain verification lives outside this engine.
var settlementProofPattern = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{8,128}$`)

type TransactionUsecase interface {
	Confirm(ctx context.Context, input *transactiondto.ConfirmTransactionInput) (*domain.Transaction, error)
	GetTransactionByID(txID string) (*domain.Transaction, error)
	GetTransactionsByPaymentID(paymentID string) ([]*domain.Transaction, error)
}

type DefaultTransactionUsecase struct {
	TransactionRepo       domain.TransactionRepository
	PaymentUsecase        PaymentUsecase
	QuoteService          domain.QuoteService
	Notifier              domain.SettlementNotifier
	Metrics               *metrics.PaymentMetrics
	TargetCurrency        string
	RequiredConfirmations int32

	now func() time.Time
}

func NewDefaultTransactionUsecase(
	transactionRepo domain.TransactionRepository,
	paymentUsecase PaymentUsecase,
	quoteService domain.QuoteService,
	settlementNotifier domain.SettlementNotifier,
	paymentMetrics *metrics.PaymentMetrics,
	targetCurrency string,
	requiredConfirmations int32) *DefaultTransactionUsecase {

	return &DefaultTransactionUsecase{
		TransactionRepo:       transactionRepo,
		PaymentUsecase:        paymentUsecase,
		QuoteService:          quoteService,
		Notifier:              settlementNotifier,
		Metrics:               paymentMetrics,
		TargetCurrency:        targetCurrency,
		RequiredConfirmations: requiredConfirmations,
		now:                   time.Now,
	}
}

// Confirm drives the confirmation state machine. Every precondition failure
// returns a distinct error and creates no partial state; only the proof
// check leaves a FAILED transaction behind, with the payment still PENDING
// so the payer can retry with a different proof until the session expires.
func (uc *DefaultTransactionUsecase) Confirm(ctx context.Context, input *transactiondto.ConfirmTransactionInput) (*domain.Transaction, error) {
	start := uc.now()

	// 1. Payment exists. Lookup is expiry-checked (lazy PENDING->EXPIRED).
	payment, err := uc.PaymentUsecase.GetPayment(input.PaymentIdentifier)
	if err != nil {
		return nil, err
	}

	// 2. Payment is still open.
	switch payment.Status {
	case domain.PaymentStatusPaid:
		return nil, domain.ErrAlreadyProcessed
	case domain.PaymentStatusExpired:
		return nil, domain.ErrPaymentExpired
	}

	// 3. Price the charge. The oracle call happens before any state is
	// touched and no payment-level lock is held while waiting on it.
	quote, err := uc.QuoteService.Quote(ctx, payment.AmountFiat)
	if err != nil {
		uc.Metrics.RecordError(payment.MerchantID, "pricing")
		return nil, err
	}
	uc.Metrics.RecordQuoteSource(string(quote.Source))
	if quote.Source == domain.QuoteSourceFallback {
		slog.Warn("confirming with fallback quote",
			"payment_id", payment.ID, "rate", quote.Rate.String())
	}

	// 4. Settlement proof shape check.
	if !settlementProofPattern.MatchString(input.SettlementProof) {
		failed := uc.newTransaction(payment, quote)
		failed.Status = domain.TransactionStatusFailed
		failed.FailureReason = "settlement proof failed shape validation"
		if err := uc.TransactionRepo.CreateTransaction(failed); err != nil {
			slog.Error("failed to record rejected transaction", "payment_id", payment.ID, "error", err.Error())
		}
		uc.Metrics.RecordTransactionFailed(payment.MerchantID, "invalid_proof")
		uc.Metrics.RecordConfirmDuration(payment.MerchantID, string(domain.TransactionStatusFailed), uc.now().Sub(start).Seconds())
		return nil, fmt.Errorf("%w: %q", domain.ErrSettlementProofInvalid, input.SettlementProof)
	}

	// 5. Atomic check-and-flip: exactly one concurrent confirm wins.
	tx := uc.newTransaction(payment, quote)
	tx.Status = domain.TransactionStatusConfirmed
	tx.SettlementRef = input.SettlementProof
	tx.ConfirmationCount = uc.RequiredConfirmations

	if err := uc.TransactionRepo.ConfirmPayment(tx); err != nil {
		return nil, err
	}
	payment.Status = domain.PaymentStatusPaid

	uc.Metrics.RecordPaymentPaid(payment.MerchantID, payment.Currency, string(quote.Source), payment.AmountFiat.InexactFloat64())
	uc.Metrics.RecordConfirmDuration(payment.MerchantID, string(domain.TransactionStatusConfirmed), uc.now().Sub(start).Seconds())
	slog.Info("transaction confirmed",
		"transaction_id", tx.ID,
		"payment_id", payment.ID,
		"rate", tx.ExchangeRate.String(),
		"amount_crypto", tx.TargetAmount.String(),
		"quote_source", string(tx.QuoteSource))

	// 6. Settlement notification is best-effort and never rolls back a
	// confirmed transaction.
	if err := uc.Notifier.Notify(ctx, tx, payment); err != nil {
		slog.Error("settlement notification failed",
			"transaction_id", tx.ID, "payment_id", payment.ID, "error", err.Error())
	}

	return tx, nil
}

func (uc *DefaultTransactionUsecase) GetTransactionByID(txID string) (*domain.Transaction, error) {
	return uc.TransactionRepo.GetTransactionByID(txID)
}

func (uc *DefaultTransactionUsecase) GetTransactionsByPaymentID(paymentID string) ([]*domain.Transaction, error) {
	return uc.TransactionRepo.GetTransactionsByPaymentID(paymentID)
}

func (uc *DefaultTransactionUsecase) newTransaction(payment *domain.Payment, quote *domain.OracleQuote) *domain.Transaction {
	now := uc.now()
	return &domain.Transaction{
		ID:                    uuid.New().String(),
		PaymentID:             payment.ID,
		SourceAmount:          payment.AmountFiat,
		SourceCurrency:        payment.Currency,
		ExchangeRate:          quote.Rate,
		TargetAmount:          quote.TargetAmount,
		TargetCurrency:        uc.TargetCurrency,
		QuoteSource:           quote.Source,
		RequiredConfirmations: uc.RequiredConfirmations,
		WalletAddress:         payment.WalletAddress,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}
