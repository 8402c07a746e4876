package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	transactionrequest "github.com/lumipay/qr-payment-service/internal/delivery/http/dto/transaction/request"
	transactionresponse "github.com/lumipay/qr-payment-service/internal/delivery/http/dto/transaction/response"
	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/lumipay/qr-payment-service/internal/usecase"
	transactiondto "github.com/lumipay/qr-payment-service/internal/usecase/dto/transaction"
)

type TransactionHandler struct {
	transactionUsecase usecase.TransactionUsecase
}

func NewTransactionHandler(transactionUsecase usecase.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{transactionUsecase: transactionUsecase}
}

func (h *TransactionHandler) Confirm(c *fiber.Ctx) error {
	var body transactionrequest.ConfirmTransactionRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if body.PaymentID == "" {
		return errorJSON(c, fmt.Errorf("%w: payment_id is required", domain.ErrValidation))
	}

	tx, err := h.transactionUsecase.Confirm(c.Context(), &transactiondto.ConfirmTransactionInput{
		PaymentIdentifier: body.PaymentID,
		SettlementProof:   body.SettlementProof,
	})
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(transactionresponse.FromDomainTransaction(tx))
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.transactionUsecase.GetTransactionByID(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(transactionresponse.FromDomainTransaction(tx))
}

func (h *TransactionHandler) ListPaymentTransactions(c *fiber.Ctx) error {
	txs, err := h.transactionUsecase.GetTransactionsByPaymentID(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}

	resp := make([]*transactionresponse.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, transactionresponse.FromDomainTransaction(tx))
	}
	return c.JSON(fiber.Map{"transactions": resp})
}
