package mappers

import (
	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:                    model.ID,
		PaymentID:             model.PaymentID,
		SourceAmount:          model.SourceAmount,
		SourceCurrency:        model.SourceCurrency,
		ExchangeRate:          model.ExchangeRate,
		TargetAmount:          model.TargetAmount,
		TargetCurrency:        model.TargetCurrency,
		QuoteSource:           model.QuoteSource,
		Status:                model.Status,
		SettlementRef:         model.SettlementRef,
		FailureReason:         model.FailureReason,
		ConfirmationCount:     model.ConfirmationCount,
		RequiredConfirmations: model.RequiredConfirmations,
		WalletAddress:         model.WalletAddress,
		CreatedAt:             model.CreatedAt,
		UpdatedAt:             model.UpdatedAt,
	}
}

func ToGORMTransaction(tx *domain.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:                    tx.ID,
		PaymentID:             tx.PaymentID,
		SourceAmount:          tx.SourceAmount,
		SourceCurrency:        tx.SourceCurrency,
		ExchangeRate:          tx.ExchangeRate,
		TargetAmount:          tx.TargetAmount,
		TargetCurrency:        tx.TargetCurrency,
		QuoteSource:           tx.QuoteSource,
		Status:                tx.Status,
		SettlementRef:         tx.SettlementRef,
		FailureReason:         tx.FailureReason,
		ConfirmationCount:     tx.ConfirmationCount,
		RequiredConfirmations: tx.RequiredConfirmations,
		WalletAddress:         tx.WalletAddress,
		CreatedAt:             tx.CreatedAt,
		UpdatedAt:             tx.UpdatedAt,
	}
}
