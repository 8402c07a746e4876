package mappers

import (
	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainPayment(model *models.PaymentModel) *domain.Payment {
	return &domain.Payment{
		ID:              model.ID,
		SessionID:       model.SessionID,
		MerchantID:      model.MerchantID,
		MerchantOrderID: model.MerchantOrderID,
		AmountFiat:      model.AmountFiat,
		Currency:        model.Currency,
		Concept:         model.Concept,
		WalletAddress:   model.WalletAddress,
		QRPayload:       model.QRPayload,
		CallbackURL:     model.CallbackURL,
		Status:          model.Status,
		ExpiresAt:       model.ExpiresAt,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func ToGORMPayment(payment *domain.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:              payment.ID,
		SessionID:       payment.SessionID,
		MerchantID:      payment.MerchantID,
		MerchantOrderID: payment.MerchantOrderID,
		AmountFiat:      payment.AmountFiat,
		Currency:        payment.Currency,
		Concept:         payment.Concept,
		WalletAddress:   payment.WalletAddress,
		QRPayload:       payment.QRPayload,
		CallbackURL:     payment.CallbackURL,
		Status:          payment.Status,
		ExpiresAt:       payment.ExpiresAt,
		CreatedAt:       payment.CreatedAt,
		UpdatedAt:       payment.UpdatedAt,
	}
}
