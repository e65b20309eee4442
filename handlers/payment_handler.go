package handlers

import (
	"errors"

	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/anjiri1684/english_academy/payments"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateCheckoutSession starts a Stripe Checkout for a published course. The
// enrollment itself is only ever written by the webhook reconciler once the
// payment completes.
func CreateCheckoutSession(checkout *payments.CheckoutService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type Request struct {
			CourseID uint `json:"course_id" validate:"required"`
		}
		var req Request
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		student, err := currentStudent(c)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student record not found"})
		}

		var course models.Course
		if err := database.DB.First(&course, "id = ? AND is_published = ?", req.CourseID, true).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		}

		var existing models.Enrollment
		err = database.DB.Where("student_id = ? AND course_id = ?", student.ID, course.ID).First(&existing).Error
		if err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You are already enrolled in this course"})
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
		}

		session, err := checkout.CreateCourseSession(&course, currentUserID(c))
		if err != nil {
			logrus.WithError(err).Error("🔥 Stripe checkout session creation failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create checkout session"})
		}

		return c.JSON(fiber.Map{
			"session_id":   session.ID,
			"checkout_url": session.URL,
		})
	}
}
