package walletValidator

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func Deposit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount           uint64 `json:"amount"`
			PaymentGateway   string `json:"paymentGateway"`
			PaymentOrderID   string `json:"paymentOrderId"`
			PaymentID        string `json:"paymentId"`
			PaymentSignature string `json:"paymentSignature"`
			PaymentMethod    string `json:"paymentMethod"`
			PaymentStatus    string `json:"paymentStatus"`
			PaymentResponse  any    `json:"paymentResponse"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Amount == 0 {
			errors["amount"] = "Amount must be greater than zero!"
		}
		if strings.TrimSpace(reqData.PaymentID) == "" {
			errors["paymentId"] = "Payment id is required!"
		}
		if strings.TrimSpace(reqData.PaymentGateway) == "" {
			errors["paymentGateway"] = "Payment gateway is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDeposit", reqData)
		return c.Next()
	}
}
