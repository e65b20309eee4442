package routes

import (
	config "github.com/anjiri1684/english_academy/configs"
	"github.com/anjiri1684/english_academy/handlers"
	"github.com/anjiri1684/english_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App, cfg *config.Config) {
	api := app.Group("/api/v1")

	me := api.Group("/me", middleware.Protected(cfg.Auth.JWTSecret))
	me.Get("", handlers.GetProfile)
	me.Put("", handlers.UpdateProfile)
	me.Get("/progress", handlers.GetMyProgress)
	me.Get("/enrollments", handlers.GetMyEnrollments)
	me.Get("/attendance", handlers.GetMyAttendance)
	me.Get("/courses", middleware.TeacherRequired(), handlers.GetMyCourses)
}
