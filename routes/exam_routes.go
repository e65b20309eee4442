package routes

import (
	config "github.com/anjiri1684/english_academy/configs"
	"github.com/anjiri1684/english_academy/handlers"
	"github.com/anjiri1684/english_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func ExamRoutes(app *fiber.App, cfg *config.Config) {
	api := app.Group("/api/v1")

	questions := api.Group("/questions", middleware.Protected(cfg.Auth.JWTSecret), middleware.TeacherRequired())
	questions.Post("", handlers.CreateQuestion)
	questions.Get("", handlers.ListQuestions)
	questions.Get("/:questionId", handlers.GetQuestion)
	questions.Put("/:questionId", handlers.UpdateQuestion)
	questions.Delete("/:questionId", handlers.DeleteQuestion)

	exams := api.Group("/exams", middleware.Protected(cfg.Auth.JWTSecret))
	exams.Post("", middleware.TeacherRequired(), handlers.CreateExam)
	exams.Get("", handlers.ListExams)
	exams.Get("/:examId", handlers.GetExam)
	exams.Put("/:examId", middleware.TeacherRequired(), handlers.UpdateExam)
	exams.Delete("/:examId", middleware.TeacherRequired(), handlers.DeleteExam)

	exams.Post("/:examId/attempts", handlers.StartExamAttempt)

	attempts := api.Group("/attempts", middleware.Protected(cfg.Auth.JWTSecret))
	attempts.Post("/:attemptId/submit", handlers.SubmitExamAttempt)
}
