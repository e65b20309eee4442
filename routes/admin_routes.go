package routes

import (
	config "github.com/anjiri1684/english_academy/configs"
	"github.com/anjiri1684/english_academy/handlers"
	"github.com/anjiri1684/english_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App, cfg *config.Config) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(cfg.Auth.JWTSecret), middleware.AdminRequired())
	admin.Get("/users", handlers.AdminListUsers)
	admin.Patch("/users/:userId/active", handlers.AdminSetUserActive)
	admin.Get("/teacher-applications", handlers.AdminListTeacherApplications)
	admin.Post("/teacher-applications/:teacherId/review", handlers.AdminReviewTeacherApplication)
	admin.Get("/enrollments", handlers.AdminListEnrollments)
	admin.Post("/enrollments", handlers.AdminEnrollStudent)
	admin.Get("/stats", handlers.AdminDashboardStats)
}
