package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lumipay/qr-payment-service/internal/delivery/http/handlers"
	"github.com/lumipay/qr-payment-service/internal/usecase"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(paymentUC usecase.PaymentUsecase, transactionUC usecase.TransactionUsecase) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "qr-payment-service",
	})
	app.Use(recover.New())
	app.Use(logger.New())

	paymentHandler := handlers.NewPaymentHandler(paymentUC)
	transactionHandler := handlers.NewTransactionHandler(transactionUC)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")

	payments := v1.Group("/payments")
	payments.Post("/", paymentHandler.CreatePayment)
	payments.Get("/:id", paymentHandler.GetPayment)
	payments.Post("/:id/qr/regenerate", paymentHandler.RegenerateQR)
	payments.Get("/:id/transactions", transactionHandler.ListPaymentTransactions)

	transactions := v1.Group("/transactions")
	transactions.Post("/confirm", transactionHandler.Confirm)
	transactions.Get("/:id", transactionHandler.GetTransaction)

	v1.Get("/merchants/:merchantId/payments", paymentHandler.ListMerchantPayments)

	return app
}
