package repository

import (
	"errors"
	"time"

	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) CreateTransaction(tx *domain.Transaction) error {
	txModel := mappers.ToGORMTransaction(tx)
	if err := r.DB.Create(txModel).Error; err != nil {
		return err
	}
	return nil
}

// ConfirmPayment runs the conditional status flip and the transaction insert
// in one storage transaction. The WHERE on status makes the flip a
// compare-and-swap: of N concurrent confirms exactly one sees RowsAffected=1,
// the rest abort with ErrAlreadyProcessed before anything is written.
func (r *DefaultTransactionRepository) ConfirmPayment(tx *domain.Transaction) error {
	return r.DB.Transaction(func(db *gorm.DB) error {
		res := db.Model(&models.PaymentModel{}).
			Where("id = ? AND status = ?", tx.PaymentID, domain.PaymentStatusPending).
			Updates(map[string]interface{}{
				"status":     domain.PaymentStatusPaid,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Re-read to tell a lost race to another confirm (PAID) apart
			// from a lost race to the expiry sweep (EXPIRED).
			var payment models.PaymentModel
			if err := db.Select("status").First(&payment, "id = ?", tx.PaymentID).Error; err != nil {
				return err
			}
			if payment.Status == domain.PaymentStatusExpired {
				return domain.ErrPaymentExpired
			}
			return domain.ErrAlreadyProcessed
		}

		return db.Create(mappers.ToGORMTransaction(tx)).Error
	})
}

func (r *DefaultTransactionRepository) GetTransactionByID(txID string) (*domain.Transaction, error) {
	var txModel models.TransactionModel
	if err := r.DB.First(&txModel, "id = ?", txID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return mappers.ToDomainTransaction(&txModel), nil
}

func (r *DefaultTransactionRepository) GetTransactionsByPaymentID(paymentID string) ([]*domain.Transaction, error) {
	var txModels []models.TransactionModel
	if err := r.DB.
		Where("payment_id = ?", paymentID).
		Order("created_at DESC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}

	txs := make([]*domain.Transaction, len(txModels))
	for i, txModel := range txModels {
		txs[i] = mappers.ToDomainTransaction(&txModel)
	}

	return txs, nil
}
