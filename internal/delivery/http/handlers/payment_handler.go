package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	paymentrequest "github.com/lumipay/qr-payment-service/internal/delivery/http/dto/payment/request"
	paymentresponse "github.com/lumipay/qr-payment-service/internal/delivery/http/dto/payment/response"
	"github.com/lumipay/qr-payment-service/internal/domain"
	"github.com/lumipay/qr-payment-service/internal/usecase"
	paymentdto "github.com/lumipay/qr-payment-service/internal/usecase/dto/payment"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var body paymentrequest.CreatePaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	amount, err := decimal.NewFromString(body.AmountFiat)
	if err != nil {
		return errorJSON(c, fmt.Errorf("%w: amount_fiat must be a decimal string", domain.ErrValidation))
	}

	payment, err := h.paymentUsecase.CreatePayment(&paymentdto.CreatePaymentInput{
		MerchantParams: paymentdto.MerchantParams{
			MerchantID:      body.MerchantID,
			MerchantOrderID: body.MerchantOrderID,
		},
		AmountFiat:  amount,
		Currency:    body.Currency,
		Concept:     body.Concept,
		CallbackURL: body.CallbackURL,
	})
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(paymentresponse.FromDomainPayment(payment))
}

// GetPayment accepts either a session id or a payment id.
func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	payment, err := h.paymentUsecase.GetPayment(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(paymentresponse.FromDomainPayment(payment))
}

func (h *PaymentHandler) RegenerateQR(c *fiber.Ctx) error {
	payment, err := h.paymentUsecase.RegenerateQR(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(paymentresponse.FromDomainPayment(payment))
}

func (h *PaymentHandler) ListMerchantPayments(c *fiber.Ctx) error {
	merchantID := c.Params("merchantId")
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "50"), 10, 64)

	payments, total, err := h.paymentUsecase.GetPaymentsByMerchantID(merchantID, page, limit)
	if err != nil {
		return errorJSON(c, err)
	}

	resp := &paymentresponse.PaymentListResponse{
		Payments: make([]*paymentresponse.PaymentResponse, 0, len(payments)),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}
	for _, payment := range payments {
		resp.Payments = append(resp.Payments, paymentresponse.FromDomainPayment(payment))
	}
	return c.JSON(resp)
}
