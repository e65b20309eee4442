package routes

import (
	"github.com/anjiri1684/english_academy/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/courses", handlers.ListCourses)
	api.Get("/courses/:slug", handlers.GetCourse)
	api.Get("/courses/:courseId/reviews", handlers.ListCourseReviews)

	api.Get("/teachers", handlers.ListApprovedTeachers)
	api.Get("/teachers/:teacherId", handlers.GetTeacherProfile)
}
