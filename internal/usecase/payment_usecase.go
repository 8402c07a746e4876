package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/lumipay/qr-payment-service/internal/client"
	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/metrics"
	"github.com/lumipay/qr-payment-service/internal/qrcode"
	paymentdto "github.com/lumipay/qr-payment-service/internal/usecase/dto/payment"
)

const sessionIDLength = 21

type PaymentUsecase interface {
	CreatePayment(input *paymentdto.CreatePaymentInput) (*domain.Payment, error)
	GetPayment(identifier string) (*domain.Payment, error)
	RegenerateQR(paymentID string) (*domain.Payment, error)
	GetPaymentsByMerchantID(merchantID string, page, limit int64) ([]*domain.Payment, int64, error)
	ExpireStalePayments(ctx context.Context) error
}

type DefaultPaymentUsecase struct {
	PaymentRepo    domain.PaymentRepository
	WalletClient   client.WalletClient
	Metrics        *metrics.PaymentMetrics
	SessionTTL     time.Duration
	TargetCurrency string

	// now is swappable so expiry boundaries are testable with a fake clock
	now func() time.Time
}

func NewDefaultPaymentUsecase(
	paymentRepo domain.PaymentRepository,
	walletClient client.WalletClient,
	paymentMetrics *metrics.PaymentMetrics,
	sessionTTL time.Duration,
	targetCurrency string) *DefaultPaymentUsecase {

	return &DefaultPaymentUsecase{
		PaymentRepo:    paymentRepo,
		WalletClient:   walletClient,
		Metrics:        paymentMetrics,
		SessionTTL:     sessionTTL,
		TargetCurrency: targetCurrency,
		now:            time.Now,
	}
}

func (uc *DefaultPaymentUsecase) CreatePayment(input *paymentdto.CreatePaymentInput) (*domain.Payment, error) {
	if input.MerchantID == "" {
		return nil, fmt.Errorf("%w: merchant_id is required", domain.ErrValidation)
	}
	if !input.AmountFiat.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if input.Currency == "" {
		return nil, fmt.Errorf("%w: currency is required", domain.ErrValidation)
	}

	walletAddress, err := uc.WalletClient.GetSettlementAddress(input.MerchantID)
	if err != nil {
		uc.Metrics.RecordError(input.MerchantID, "wallet_address")
		return nil, fmt.Errorf("failed to resolve settlement address: %w", err)
	}

	idGenerator, err := nanoid.Standard(sessionIDLength)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	payment := &domain.Payment{
		ID:              uuid.New().String(),
		SessionID:       idGenerator(),
		MerchantID:      input.MerchantID,
		MerchantOrderID: input.MerchantOrderID,
		AmountFiat:      input.AmountFiat,
		Currency:        input.Currency,
		Concept:         input.Concept,
		WalletAddress:   walletAddress,
		CallbackURL:     input.CallbackURL,
		Status:          domain.PaymentStatusPending,
		ExpiresAt:       now.Add(uc.SessionTTL),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	payload, err := uc.buildQRPayload(payment, now)
	if err != nil {
		return nil, err
	}
	payment.QRPayload = payload

	if err := uc.PaymentRepo.CreatePayment(payment); err != nil {
		uc.Metrics.RecordError(input.MerchantID, "create")
		return nil, fmt.Errorf("failed to persist payment: %w", err)
	}

	uc.Metrics.RecordPaymentCreated(payment.MerchantID, payment.Currency, payment.AmountFiat.InexactFloat64())
	slog.Info("payment session created",
		"payment_id", payment.ID,
		"merchant_id", payment.MerchantID,
		"amount_fiat", payment.AmountFiat.String(),
		"expires_at", payment.ExpiresAt)

	return payment, nil
}

// GetPayment resolves the identifier by exact session id first, then by
// payment id. Truncated identifier prefixes are never matched: two sessions
// sharing a prefix must not alias each other.
func (uc *DefaultPaymentUsecase) GetPayment(identifier string) (*domain.Payment, error) {
	if identifier == "" {
		return nil, fmt.Errorf("%w: identifier is required", domain.ErrValidation)
	}

	payment, err := uc.PaymentRepo.GetPaymentBySessionID(identifier)
	if errors.Is(err, domain.ErrPaymentNotFound) {
		payment, err = uc.PaymentRepo.GetPaymentByID(identifier)
	}
	if err != nil {
		return nil, err
	}

	return uc.withLazyExpiry(payment)
}

// withLazyExpiry persists PENDING->EXPIRED before returning, so every read
// sees the authoritative expiry-checked state.
func (uc *DefaultPaymentUsecase) withLazyExpiry(payment *domain.Payment) (*domain.Payment, error) {
	if payment.Status != domain.PaymentStatusPending || !payment.IsExpiredAt(uc.now()) {
		return payment, nil
	}

	flipped, err := uc.PaymentRepo.MarkExpired(payment.ID)
	if err != nil {
		return nil, err
	}
	if !flipped {
		// Lost to a concurrent confirm or sweep; re-read the truth.
		return uc.PaymentRepo.GetPaymentByID(payment.ID)
	}

	payment.Status = domain.PaymentStatusExpired
	uc.Metrics.RecordPaymentExpired(payment.MerchantID)
	slog.Info("payment session expired on read", "payment_id", payment.ID)
	return payment, nil
}

// RegenerateQR re-renders the payload for the same session identity. The
// expiry is untouched and no second payment is ever created; only the
// issued-at tag (and thus the checksum) changes between renders.
func (uc *DefaultPaymentUsecase) RegenerateQR(paymentID string) (*domain.Payment, error) {
	payment, err := uc.GetPayment(paymentID)
	if err != nil {
		return nil, err
	}

	switch payment.Status {
	case domain.PaymentStatusPaid:
		return nil, domain.ErrAlreadyProcessed
	case domain.PaymentStatusExpired:
		return nil, domain.ErrPaymentExpired
	}

	payload, err := uc.buildQRPayload(payment, uc.now())
	if err != nil {
		return nil, err
	}

	if err := uc.PaymentRepo.UpdateQRPayload(payment.ID, payload); err != nil {
		return nil, err
	}

	payment.QRPayload = payload
	uc.Metrics.RecordQRRegenerated(payment.MerchantID)
	return payment, nil
}

func (uc *DefaultPaymentUsecase) GetPaymentsByMerchantID(merchantID string, page, limit int64) ([]*domain.Payment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return uc.PaymentRepo.GetPaymentsByMerchantID(merchantID, page, limit)
}

func (uc *DefaultPaymentUsecase) ExpireStalePayments(ctx context.Context) error {
	count, err := uc.PaymentRepo.ExpireStale(uc.now())
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("expired stale payment sessions", "count", count)
	}
	return nil
}

func (uc *DefaultPaymentUsecase) buildQRPayload(payment *domain.Payment, issuedAt time.Time) (string, error) {
	fields := []qrcode.Field{
		{Tag: qrcode.TagMerchantAddress, Value: payment.WalletAddress},
		{Tag: qrcode.TagAmountFiat, Value: payment.AmountFiat.String()},
		{Tag: qrcode.TagSessionID, Value: payment.SessionID},
		{Tag: qrcode.TagTargetCurrency, Value: uc.TargetCurrency},
		{Tag: qrcode.TagIssuedAt, Value: strconv.FormatInt(issuedAt.Unix(), 10)},
	}

	payload, err := qrcode.Encode(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR payload: %w", err)
	}
	return payload, nil
}
