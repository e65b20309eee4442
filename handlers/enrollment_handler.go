package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetMyEnrollments(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student record not found"})
	}

	var enrollments []models.Enrollment
	if err := database.DB.
		Preload("Course").
		Preload("Course.Teacher").
		Where("student_id = ?", student.ID).
		Order("enrolled_at desc").
		Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch enrollments"})
	}

	return c.JSON(enrollments)
}

func ListCourseEnrollments(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	if course.TeacherID != currentUserID(c) && currentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this course"})
	}

	var enrollments []models.Enrollment
	if err := database.DB.
		Preload("Student.User").
		Where("course_id = ?", courseID).
		Order("enrolled_at asc").
		Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch enrollments"})
	}

	return c.JSON(enrollments)
}

// AdminEnrollStudent creates a comped enrollment outside the payment flow.
// It goes through the same unique index as the webhook reconciler, so a
// duplicate is reported, never doubled.
func AdminEnrollStudent(c *fiber.Ctx) error {
	type Request struct {
		StudentID uint   `json:"student_id" validate:"required"`
		CourseID  uint   `json:"course_id" validate:"required"`
		Reason    string `json:"reason" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", req.StudentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}
	var course models.Course
	if err := database.DB.First(&course, "id = ?", req.CourseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	enrollment := models.Enrollment{
		StudentID:     req.StudentID,
		CourseID:      req.CourseID,
		EnrolledAt:    time.Now(),
		Status:        models.EnrollmentStatusActive,
		PaymentStatus: models.PaymentStatusFree,
		Notes:         fmt.Sprintf("Manually enrolled by admin (user %d). Reason: %s", currentUserID(c), req.Reason),
	}
	if err := database.DB.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Student is already enrolled in this course"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create enrollment"})
	}

	return c.Status(fiber.StatusCreated).JSON(enrollment)
}
