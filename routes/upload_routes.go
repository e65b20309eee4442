package routes

import (
	config "github.com/anjiri1684/english_academy/configs"
	"github.com/anjiri1684/english_academy/handlers"
	"github.com/anjiri1684/english_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App, cfg *config.Config) {
	api := app.Group("/api/v1")

	api.Post("/uploads/signature", middleware.Protected(cfg.Auth.JWTSecret), handlers.GenerateUploadSignature(cfg))
}
