package routes

import (
	config "github.com/anjiri1684/english_academy/configs"
	"github.com/anjiri1684/english_academy/handlers"
	"github.com/anjiri1684/english_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

// Ownership-scoped operations (update, publish, sessions, grading) enforce
// owner-or-admin inside the handler, so they only need Protected here.
func CourseRoutes(app *fiber.App, cfg *config.Config) {
	api := app.Group("/api/v1")

	courses := api.Group("/courses", middleware.Protected(cfg.Auth.JWTSecret))
	courses.Post("", middleware.TeacherRequired(), handlers.CreateCourse)
	courses.Put("/:courseId", handlers.UpdateCourse)
	courses.Post("/:courseId/publish", handlers.PublishCourse)
	courses.Delete("/:courseId", handlers.DeleteCourse)
	courses.Get("/:courseId/enrollments", handlers.ListCourseEnrollments)

	// Materials
	courses.Post("/:courseId/materials", handlers.UploadMaterial(cfg))
	courses.Get("/:courseId/materials", handlers.GetCourseMaterials)

	// Activities
	courses.Post("/:courseId/activities", handlers.CreateActivity)
	courses.Get("/:courseId/activities", handlers.ListCourseActivities)

	activities := api.Group("/activities", middleware.Protected(cfg.Auth.JWTSecret))
	activities.Put("/:activityId", handlers.UpdateActivity)
	activities.Delete("/:activityId", handlers.DeleteActivity)
	activities.Post("/:activityId/submissions", handlers.SubmitActivity)
	activities.Get("/:activityId/submissions", handlers.ListActivitySubmissions)

	submissions := api.Group("/submissions", middleware.Protected(cfg.Auth.JWTSecret))
	submissions.Post("/:submissionId/grade", handlers.GradeSubmission)

	// Lesson sessions and attendance
	courses.Post("/:courseId/sessions", handlers.CreateLessonSession)
	courses.Get("/:courseId/sessions", handlers.ListCourseSessions)

	sessions := api.Group("/sessions", middleware.Protected(cfg.Auth.JWTSecret))
	sessions.Post("/:sessionId/attendance", handlers.MarkAttendance)
	sessions.Get("/:sessionId/attendance", handlers.GetSessionAttendance)

	// Reviews
	courses.Post("/:courseId/reviews", handlers.CreateReview)

	reviews := api.Group("/reviews", middleware.Protected(cfg.Auth.JWTSecret))
	reviews.Delete("/:reviewId", handlers.DeleteReview)
}
