package handlers

import (
	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/gofiber/fiber/v2"
)

type TeacherApplicationRequest struct {
	Headline string `json:"headline" validate:"required,min=10"`
	Bio      string `json:"bio" validate:"required,min=50"`
}

// ApplyToTeach creates a pending teacher profile for the calling user. An
// admin has to approve it before the role flips to teacher.
func ApplyToTeach(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var existing models.Teacher
	if err := database.DB.First(&existing, "user_id = ?", userID).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already applied to teach"})
	}

	var req TeacherApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	teacher := models.Teacher{
		UserID:   userID,
		Headline: &req.Headline,
		Bio:      &req.Bio,
		Status:   "pending",
	}
	if err := database.DB.Create(&teacher).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit application"})
	}

	return c.Status(fiber.StatusCreated).JSON(teacher)
}

func ListApprovedTeachers(c *fiber.Ctx) error {
	var teachers []models.Teacher
	if err := database.DB.
		Preload("User").
		Where("status = ?", "approved").
		Order("avg_rating desc").
		Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch teachers"})
	}
	return c.JSON(teachers)
}

func GetTeacherProfile(c *fiber.Ctx) error {
	teacherID := c.Params("teacherId")

	var teacher models.Teacher
	if err := database.DB.
		Preload("User").
		Preload("Courses", "is_published = ?", true).
		First(&teacher, "user_id = ? AND status = ?", teacherID, "approved").Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}
	return c.JSON(teacher)
}
