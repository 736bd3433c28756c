package handlers

import (
	"pagos/internal/models"
	"pagos/internal/services/payment"
	"pagos/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	paymentService payment.Service
}

func NewPaymentHandler(paymentSvc payment.Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentSvc,
	}
}

// CreatePayment handles POST /pago
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var input models.CreatePaymentRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	result, err := h.paymentService.CreatePayment(c.UserContext(), input)
	if err != nil {
		return response.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// ConfirmPayment handles POST /confirmarpago. The gateway's intent is
// written back byte for byte.
func (h *PaymentHandler) ConfirmPayment(c *fiber.Ctx) error {
	var input models.ConfirmPaymentRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	intent, err := h.paymentService.ConfirmPayment(c.UserContext(), input)
	if err != nil {
		return response.FromError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(intent)
}

// ListPayments handles GET /historialpagos
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	rows, err := h.paymentService.ListPayments(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(rows)
}
