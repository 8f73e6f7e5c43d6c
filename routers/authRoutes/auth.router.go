package authRoutes

import (
	authController "lms/controllers/auth"
	"lms/middleware"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, authController.GetProfile)
	authGroup.Put("/profile", authValidator.ProfileUpdate(), middleware.JWTMiddleware, authController.UpdateProfile)

	adminGroup := app.Group("/admin/user")
	adminGroup.Put("/:userId", authValidator.AdminUserUpdate(), middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), authValidator.UserID(), authController.AdminUpdateUser)
}
