package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{DB: db}
}

func (r *DefaultPaymentRepository) CreatePayment(payment *domain.Payment) error {
	paymentModel := mappers.ToGORMPayment(payment)
	if err := r.DB.Create(paymentModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultPaymentRepository) GetPaymentByID(paymentID string) (*domain.Payment, error) {
	var payment models.PaymentModel
	if err := r.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}

	return mappers.ToDomainPayment(&payment), nil
}

func (r *DefaultPaymentRepository) GetPaymentBySessionID(sessionID string) (*domain.Payment, error) {
	var payment models.PaymentModel
	if err := r.DB.First(&payment, "session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}

	return mappers.ToDomainPayment(&payment), nil
}

func (r *DefaultPaymentRepository) GetPaymentsByMerchantID(merchantID string, page, limit int64) ([]*domain.Payment, int64, error) {
	var paymentModels []models.PaymentModel
	var total int64

	baseQuery := r.DB.Model(&models.PaymentModel{}).Where("merchant_id = ?", merchantID)

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	offset := (page - 1) * limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&paymentModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find payments: %w", err)
	}

	payments := make([]*domain.Payment, len(paymentModels))
	for i, paymentModel := range paymentModels {
		payments[i] = mappers.ToDomainPayment(&paymentModel)
	}

	return payments, total, nil
}

func (r *DefaultPaymentRepository) UpdateQRPayload(paymentID, qrPayload string) error {
	res := r.DB.Model(&models.PaymentModel{}).
		Where("id = ?", paymentID).
		Updates(map[string]interface{}{
			"qr_payload": qrPayload,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// MarkExpired is conditional on the payment still being PENDING, so a
// concurrent confirm that already flipped it to PAID is never clobbered.
func (r *DefaultPaymentRepository) MarkExpired(paymentID string) (bool, error) {
	res := r.DB.Model(&models.PaymentModel{}).
		Where("id = ? AND status = ?", paymentID, domain.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":     domain.PaymentStatusExpired,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DefaultPaymentRepository) ExpireStale(now time.Time) (int64, error) {
	res := r.DB.Model(&models.PaymentModel{}).
		Where("status = ? AND expires_at < ?", domain.PaymentStatusPending, now).
		Updates(map[string]interface{}{
			"status":     domain.PaymentStatusExpired,
			"updated_at": now,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
