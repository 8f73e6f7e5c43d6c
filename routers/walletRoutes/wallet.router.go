package walletRoutes

import (
	walletController "lms/controllers/wallet"
	"lms/middleware"
	walletValidator "lms/validators/wallet"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App) {
	walletGroup := app.Group("/wallet")

	walletGroup.Get("/balance", middleware.JWTMiddleware, walletController.GetWalletBalance)
	walletGroup.Post("/deposit", walletValidator.Deposit(), middleware.JWTMiddleware, walletController.DepositToWallet)
	walletGroup.Get("/history", middleware.JWTMiddleware, walletController.GetWalletHistory)
}
