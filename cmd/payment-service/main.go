package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lumipay/qr-payment-service/internal/app/background"
	"github.com/lumipay/qr-payment-service/internal/app/setup"
	httpdelivery "github.com/lumipay/qr-payment-service/internal/delivery/http"
)

func main() {
	_ = godotenv.Load()

	deps, err := setup.InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to initialize dependencies: %v", err)
	}
	defer deps.SettlementPublisher.Close()

	usecases := setup.InitializeUseCases(deps)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tasks := background.NewBackgroundTasks(usecases.PaymentUsecase, deps.OracleService, deps.Config.Oracle.RefreshInterval)
	tasks.StartAll(ctx)

	app := httpdelivery.NewRouter(usecases.PaymentUsecase, usecases.TransactionUsecase)

	go func() {
		addr := fmt.Sprintf("%s:%s", deps.Config.HTTPServer.Host, deps.Config.HTTPServer.Port)
		slog.Info("HTTP server starting", "addr", addr, "env", deps.Config.Env)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("fiber error: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
