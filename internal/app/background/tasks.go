package background

import (
	"context"
	"log"
	"time"

	"github.com/lumipay/qr-payment-service/internal/infrastructure/oracle"
	"github.com/lumipay/qr-payment-service/internal/usecase"
)

type BackgroundTasks struct {
	PaymentUsecase  usecase.PaymentUsecase
	OracleService   *oracle.Service
	RefreshInterval time.Duration
	SweepInterval   time.Duration
}

func NewBackgroundTasks(paymentUC usecase.PaymentUsecase, oracleService *oracle.Service, refreshInterval time.Duration) *BackgroundTasks {
	return &BackgroundTasks{
		PaymentUsecase:  paymentUC,
		OracleService:   oracleService,
		RefreshInterval: refreshInterval,
		SweepInterval:   30 * time.Second,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startOracleRefresh(ctx)
	go bt.startExpiredPaymentSweep(ctx)
}

func (bt *BackgroundTasks) startOracleRefresh(ctx context.Context) {
	ticker := time.NewTicker(bt.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.OracleService.Refresh(ctx); err != nil {
				log.Printf("Oracle refresh failed: %v, retrying once", err)
				if err := bt.OracleService.Refresh(ctx); err != nil {
					log.Printf("Oracle refresh retry failed: %v", err)
				}
			}
		}
	}
}

func (bt *BackgroundTasks) startExpiredPaymentSweep(ctx context.Context) {
	ticker := time.NewTicker(bt.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.PaymentUsecase.ExpireStalePayments(ctx); err != nil {
				log.Printf("Expired payment sweep error: %v\n", err)
			}
		}
	}
}
