package setup

import (
	"github.com/lumipay/qr-payment-service/internal/infrastructure/notifier"
	"github.com/lumipay/qr-payment-service/internal/usecase"
)

type UseCases struct {
	PaymentUsecase     usecase.PaymentUsecase
	TransactionUsecase usecase.TransactionUsecase
}

func InitializeUseCases(deps *Dependencies) *UseCases {
	paymentUsecase := usecase.NewDefaultPaymentUsecase(
		deps.Repositories.PaymentRepo,
		deps.WalletClient,
		deps.Metrics,
		deps.Config.Payment.SessionTTL,
		deps.Config.Payment.TargetCurrency,
	)

	settlementNotifier := notifier.NewKafkaSettlementNotifier(deps.SettlementPublisher, 0)

	transactionUsecase := usecase.NewDefaultTransactionUsecase(
		deps.Repositories.TransactionRepo,
		paymentUsecase,
		deps.OracleService,
		settlementNotifier,
		deps.Metrics,
		deps.Config.Payment.TargetCurrency,
		deps.Config.Payment.RequiredConfirmations,
	)

	return &UseCases{
		PaymentUsecase:     paymentUsecase,
		TransactionUsecase: transactionUsecase,
	}
}
