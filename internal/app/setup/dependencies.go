package setup

import (
	"fmt"

	"github.com/lumipay/qr-payment-service/internal/client"
	"github.com/lumipay/qr-payment-service/internal/config"
	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/kafka"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/metrics"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/migrate"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/oracle"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/postgres"
	"github.com/lumipay/qr-payment-service/internal/infrastructure/postgres/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config              *config.PaymentConfig
	DB                  *gorm.DB
	SettlementPublisher *kafka.SettlementPublisher
	WalletClient        client.WalletClient
	OracleService       *oracle.Service
	Metrics             *metrics.PaymentMetrics
	Repositories        *Repositories
}

type Repositories struct {
	PaymentRepo      domain.PaymentRepository
	TransactionRepo  domain.TransactionRepository
	QuoteHistoryRepo domain.QuoteHistoryRepository
}

func InitializeDependencies() (*Dependencies, error) {
	cfg := config.MustLoad()

	db := postgres.MustInitDB(cfg)
	if cfg.PaymentDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.PaymentDB.MigrationsPath); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	repos := &Repositories{
		PaymentRepo:      repository.NewDefaultPaymentRepository(db),
		TransactionRepo:  repository.NewDefaultTransactionRepository(db),
		QuoteHistoryRepo: repository.NewDefaultQuoteHistoryRepository(db),
	}

	walletClient, err := client.NewHTTPWalletClient(fmt.Sprintf("%s:%s", cfg.WalletService.Host, cfg.WalletService.Port))
	if err != nil {
		return nil, fmt.Errorf("wallet client: %w", err)
	}

	oracleService, err := initOracleService(cfg, repos.QuoteHistoryRepo)
	if err != nil {
		return nil, fmt.Errorf("oracle service: %w", err)
	}

	settlementPublisher := kafka.NewSettlementPublisher(
		[]string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)},
		cfg.KafkaService.SettlementTopic,
	)

	return &Dependencies{
		Config:              cfg,
		DB:                  db,
		SettlementPublisher: settlementPublisher,
		WalletClient:        walletClient,
		OracleService:       oracleService,
		Metrics:             metrics.NewPaymentMetrics(),
		Repositories:        repos,
	}, nil
}

func initOracleService(cfg *config.PaymentConfig, history domain.QuoteHistoryRepository) (*oracle.Service, error) {
	fallbackRate := decimal.Zero
	if cfg.Oracle.FallbackRate != "" {
		var err error
		fallbackRate, err = decimal.NewFromString(cfg.Oracle.FallbackRate)
		if err != nil {
			return nil, fmt.Errorf("invalid fallback rate %q: %w", cfg.Oracle.FallbackRate, err)
		}
	}

	provider := oracle.NewRapiraProvider(cfg.Oracle.BaseURL, cfg.Oracle.RequestTimeout)
	cache := oracle.NewRateCache(cfg.Oracle.CacheTTL, nil)

	return oracle.NewService(provider, cache, history, oracle.ServiceConfig{
		Pair:           cfg.Oracle.Pair,
		FallbackRate:   fallbackRate,
		RequestTimeout: cfg.Oracle.RequestTimeout,
	}, nil), nil
}
