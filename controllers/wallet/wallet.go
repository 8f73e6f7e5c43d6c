package walletController

import (
	"encoding/json"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// GetWalletBalance returns user's current wallet balance
func GetWalletBalance(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet balance fetched!", fiber.Map{
		"balance": user.MainBalance,
	})
}

// DepositToWallet credits the caller's wallet after verifying the gateway
// payment reference
func DepositToWallet(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedDeposit").(*struct {
		Amount           uint64 `json:"amount"`
		PaymentGateway   string `json:"paymentGateway"`
		PaymentOrderID   string `json:"paymentOrderId"`
		PaymentID        string `json:"paymentId"`
		PaymentSignature string `json:"paymentSignature"`
		PaymentMethod    string `json:"paymentMethod"`
		PaymentStatus    string `json:"paymentStatus"`
		PaymentResponse  any    `json:"paymentResponse"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Verify the payment with the gateway before crediting anything
	if err := utils.VerifyGatewayPayment(reqData.PaymentID, reqData.Amount); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment verification failed!", nil)
	}

	// Convert payment response to JSON string
	paymentResponseJSON := ""
	if reqData.PaymentResponse != nil {
		if jsonBytes, err := json.Marshal(reqData.PaymentResponse); err == nil {
			paymentResponseJSON = string(jsonBytes)
		}
	}

	entry, err := services.Deposit(database.Database.Db, userID, services.DepositInput{
		Amount:           reqData.Amount,
		PaymentGateway:   reqData.PaymentGateway,
		PaymentOrderID:   reqData.PaymentOrderID,
		PaymentID:        reqData.PaymentID,
		PaymentSignature: reqData.PaymentSignature,
		PaymentMethod:    reqData.PaymentMethod,
		PaymentStatus:    reqData.PaymentStatus,
		PaymentResponse:  paymentResponseJSON,
	})
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deposit successful!", entry)
}

// GetWalletHistory returns the caller's ledger entries
func GetWalletHistory(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	entries, err := services.WalletHistory(database.Database.Db, userID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet history fetched!", fiber.Map{
		"transactions": entries,
	})
}
