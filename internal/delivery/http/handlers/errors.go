package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lumipay/qr-payment-service/internal/domain"
)

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrPaymentNotFound), errors.Is(err, domain.ErrTransactionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyProcessed):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrPaymentExpired):
		return fiber.StatusGone
	case errors.Is(err, domain.ErrSettlementProofInvalid):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPricingUnavailable), errors.Is(err, domain.ErrUpstreamTimeout):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusFromError(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
