package response

import (
	apperrors "pagos/internal/errors"

	"github.com/gofiber/fiber/v2"
)

const fallbackMessage = "Unknown error occurred"

// Error writes the single error envelope every route uses. "error" repeats
// "message" for clients written against the older per-route shapes.
func Error(c *fiber.Ctx, status int, code apperrors.Code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"code":    code,
		"message": message,
		"error":   message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, apperrors.CodeInvalidRequest, message)
}

// FromError maps a service error onto a status code and the error envelope.
func FromError(c *fiber.Ctx, err error) error {
	domainErr, ok := apperrors.As(err)
	if !ok {
		message := err.Error()
		if message == "" {
			message = fallbackMessage
		}
		return Error(c, fiber.StatusInternalServerError, apperrors.CodeInternal, message)
	}

	message := domainErr.Message
	if message == "" {
		message = fallbackMessage
	}

	switch domainErr.Code {
	case apperrors.CodeInvalidRequest:
		return Error(c, fiber.StatusBadRequest, domainErr.Code, message)
	default:
		return Error(c, fiber.StatusInternalServerError, domainErr.Code, message)
	}
}
