package handlers

import (
	"strconv"

	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/anjiri1684/english_academy/notifications"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AdminListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	offset := (page - 1) * pageSize

	query := database.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Limit(pageSize).Offset(offset).Order("created_at desc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
	})
}

func AdminSetUserActive(c *fiber.Ctx) error {
	userID := c.Params("userId")

	type Request struct {
		IsActive bool `json:"is_active"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = req.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(user)
}

func AdminListTeacherApplications(c *fiber.Ctx) error {
	var applications []models.Teacher
	if err := database.DB.Preload("User").Where("status = ?", "pending").Find(&applications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch applications"})
	}
	return c.JSON(applications)
}

func AdminReviewTeacherApplication(c *fiber.Ctx) error {
	teacherID := c.Params("teacherId")

	type Request struct {
		Approve bool `json:"approve"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var teacher models.Teacher
	if err := database.DB.Preload("User").First(&teacher, "user_id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher application not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if req.Approve {
			teacher.Status = "approved"
			if err := tx.Model(&models.User{}).Where("id = ?", teacher.UserID).Update("role", "teacher").Error; err != nil {
				return err
			}
		} else {
			teacher.Status = "rejected"
		}
		return tx.Save(&teacher).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to review application"})
	}

	subject := "Your teacher application was rejected"
	body := "<h1>Application Update</h1><p>Unfortunately your teacher application was not approved at this time.</p>"
	if req.Approve {
		subject = "Welcome to the teaching team!"
		body = "<h1>Application Approved</h1><p>Your teacher application has been approved. You can now create and publish courses.</p>"
	}
	go notifications.SendEmail(teacher.User.FullName, teacher.User.Email, subject, body)

	return c.JSON(teacher)
}

func AdminListEnrollments(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	offset := (page - 1) * pageSize

	query := database.DB.Model(&models.Enrollment{})
	if courseID := c.Query("course_id"); courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}

	var enrollments []models.Enrollment
	if err := query.
		Preload("Student.User").
		Preload("Course").
		Limit(pageSize).Offset(offset).
		Order("enrolled_at desc").
		Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch enrollments"})
	}

	return c.JSON(enrollments)
}

func AdminDashboardStats(c *fiber.Ctx) error {
	var students, teachers, courses, enrollments int64
	database.DB.Model(&models.Student{}).Count(&students)
	database.DB.Model(&models.Teacher{}).Where("status = ?", "approved").Count(&teachers)
	database.DB.Model(&models.Course{}).Where("is_published = ?", true).Count(&courses)
	database.DB.Model(&models.Enrollment{}).Count(&enrollments)

	return c.JSON(fiber.Map{
		"students":    students,
		"teachers":    teachers,
		"courses":     courses,
		"enrollments": enrollments,
	})
}
