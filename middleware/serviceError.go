package middleware

import (
	"errors"

	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// ServiceErrorResponse maps a service failure onto the JSON response
// envelope. Validation-class failures are user recoverable; integrity
// failures indicate state that should be unreachable.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrAlreadyCompleted), errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrInsufficientPayment):
		status = fiber.StatusPaymentRequired
	case errors.Is(err, services.ErrArityMismatch), errors.Is(err, services.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrIntegrity):
		status = fiber.StatusInternalServerError
	}
	return JsonResponse(c, status, false, err.Error(), nil)
}
