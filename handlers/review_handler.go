package handlers

import (
	"errors"

	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func CreateReview(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student record not found"})
	}
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var enrollment models.Enrollment
	if err := database.DB.Where("student_id = ? AND course_id = ?", student.ID, course.ID).First(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only enrolled students can review a course"})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	review := models.Review{
		CourseID:  course.ID,
		StudentID: student.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := database.DB.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already reviewed this course"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}

	go refreshTeacherRating(course.TeacherID)

	return c.Status(fiber.StatusCreated).JSON(review)
}

func ListCourseReviews(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var reviews []models.Review
	if err := database.DB.
		Preload("Student.User").
		Where("course_id = ?", courseID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reviews"})
	}
	return c.JSON(reviews)
}

func DeleteReview(c *fiber.Ctx) error {
	reviewID := c.Params("reviewId")

	var review models.Review
	if err := database.DB.First(&review, "id = ?", reviewID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review not found"})
	}

	student, err := currentStudent(c)
	isOwner := err == nil && review.StudentID == student.ID
	if !isOwner && currentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only delete your own review"})
	}

	var course models.Course
	database.DB.First(&course, "id = ?", review.CourseID)

	if err := database.DB.Delete(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete review"})
	}

	go refreshTeacherRating(course.TeacherID)

	return c.SendStatus(fiber.StatusNoContent)
}

// refreshTeacherRating recomputes the average rating across all of the
// teacher's courses.
func refreshTeacherRating(teacherUserID uint) {
	var avg *float64
	database.DB.Model(&models.Review{}).
		Joins("JOIN courses ON courses.id = reviews.course_id").
		Where("courses.teacher_id = ?", teacherUserID).
		Select("AVG(reviews.rating)").
		Row().Scan(&avg)

	if avg == nil {
		zero := 0.0
		avg = &zero
	}

	database.DB.Model(&models.Teacher{}).
		Where("user_id = ?", teacherUserID).
		Update("avg_rating", float32(*avg))
}
