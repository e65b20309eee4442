package routes

import (
	config "github.com/anjiri1684/english_academy/configs"
	"github.com/anjiri1684/english_academy/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, cfg *config.Config) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser(cfg))
	auth.Post("/forgot-password", handlers.ForgotPassword(cfg))
	auth.Post("/reset-password", handlers.ResetPassword)
}
