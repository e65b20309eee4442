package handlers

import (
	"context"
	"fmt"
	"time"

	config "github.com/anjiri1684/english_academy/configs"
	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

func UploadMaterial(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		course, err := courseOwnedByCaller(c, c.Params("courseId"))
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Course not found or you are not its teacher."})
		}

		file, err := c.FormFile("material")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Material file is required."})
		}

		cld, err := cloudinary.NewFromURL(cfg.Cloudinary.URL)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initialize Cloudinary"})
		}
		ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
		defer cancel()

		uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
			Folder:   "english_academy_materials",
			PublicID: fmt.Sprintf("course_%d_%s", course.ID, file.Filename),
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload file."})
		}

		material := models.Material{
			CourseID:   course.ID,
			FileName:   file.Filename,
			FileURL:    uploadResult.SecureURL,
			UploadedAt: time.Now(),
		}
		database.DB.Create(&material)

		return c.Status(fiber.StatusCreated).JSON(material)
	}
}

func GetCourseMaterials(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	// Materials are for enrolled students and the course teacher.
	if course.TeacherID != currentUserID(c) && currentRole(c) != "admin" {
		student, err := currentStudent(c)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have access to this course's materials."})
		}
		var enrollment models.Enrollment
		if err := database.DB.Where("student_id = ? AND course_id = ?", student.ID, course.ID).First(&enrollment).Error; err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have access to this course's materials."})
		}
	}

	var materials []models.Material
	database.DB.Where("course_id = ?", courseID).Find(&materials)

	return c.JSON(materials)
}
