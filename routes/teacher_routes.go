package routes

import (
	config "github.com/anjiri1684/english_academy/configs"
	"github.com/anjiri1684/english_academy/handlers"
	"github.com/anjiri1684/english_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func TeacherRoutes(app *fiber.App, cfg *config.Config) {
	api := app.Group("/api/v1")

	api.Post("/teachers/apply", middleware.Protected(cfg.Auth.JWTSecret), handlers.ApplyToTeach)
}
