package handlers

import (
	"errors"
	"strings"

	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CourseRequest struct {
	Title         string  `json:"title" validate:"required,min=3"`
	Description   string  `json:"description"`
	Level         string  `json:"level" validate:"required,oneof=beginner elementary intermediate upper-intermediate advanced"`
	PriceCents    int64   `json:"price_cents" validate:"required,gt=0"`
	Currency      string  `json:"currency" validate:"omitempty,len=3"`
	CoverImageURL *string `json:"cover_image_url" validate:"omitempty,url"`
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func ListCourses(c *fiber.Ctx) error {
	query := database.DB.Preload("Teacher").Where("is_published = ?", true)

	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}
	if search := c.Query("q"); search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	var courses []models.Course
	if err := query.Order("created_at desc").Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch courses"})
	}
	return c.JSON(courses)
}

func GetCourse(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var course models.Course
	if err := database.DB.Preload("Teacher").First(&course, "slug = ?", slug).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var avgRating *float64
	database.DB.Model(&models.Review{}).
		Where("course_id = ?", course.ID).
		Select("AVG(rating)").
		Row().Scan(&avgRating)

	var enrolledCount int64
	database.DB.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrolledCount)

	return c.JSON(fiber.Map{
		"course":         course,
		"avg_rating":     avgRating,
		"enrolled_count": enrolledCount,
	})
}

func CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	course := models.Course{
		TeacherID:     currentUserID(c),
		Title:         req.Title,
		Slug:          slugify(req.Title),
		Description:   req.Description,
		Level:         req.Level,
		PriceCents:    req.PriceCents,
		Currency:      currency,
		CoverImageURL: req.CoverImageURL,
	}

	if err := database.DB.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A course with this title already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	if course.TeacherID != currentUserID(c) && currentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this course"})
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Level = req.Level
	course.PriceCents = req.PriceCents
	if req.Currency != "" {
		course.Currency = req.Currency
	}
	if req.CoverImageURL != nil {
		course.CoverImageURL = req.CoverImageURL
	}
	if err := database.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update course"})
	}

	return c.JSON(course)
}

func PublishCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	if course.TeacherID != currentUserID(c) && currentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this course"})
	}

	course.IsPublished = true
	database.DB.Save(&course)

	return c.JSON(course)
}

func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	if course.TeacherID != currentUserID(c) && currentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this course"})
	}

	var enrolledCount int64
	database.DB.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrolledCount)
	if enrolledCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cannot delete a course with active enrollments"})
	}

	if err := database.DB.Delete(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete course"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func GetMyCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.DB.Where("teacher_id = ?", currentUserID(c)).Order("created_at desc").Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch courses"})
	}
	return c.JSON(courses)
}
