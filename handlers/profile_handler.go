package handlers

import (
	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	FullName          *string `json:"full_name"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	TimeZone          *string `json:"time_zone"`
	LearningGoals     *string `json:"learning_goals"`
	ProficiencyLevel  *string `json:"proficiency_level"`
}

func GetProfile(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.Preload("Student").Where("id = ?", currentUserID(c)).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.Preload("Student").Where("id = ?", currentUserID(c)).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = req.ProfilePictureURL
	}
	if req.TimeZone != nil {
		user.TimeZone = req.TimeZone
	}
	database.DB.Save(&user)

	if user.Student != nil && (req.LearningGoals != nil || req.ProficiencyLevel != nil) {
		if req.LearningGoals != nil {
			user.Student.LearningGoals = req.LearningGoals
		}
		if req.ProficiencyLevel != nil {
			user.Student.ProficiencyLevel = req.ProficiencyLevel
		}
		database.DB.Save(user.Student)
	}

	return c.JSON(user)
}

func GetMyProgress(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student record not found"})
	}

	var enrolledCourses int64
	database.DB.Model(&models.Enrollment{}).
		Where("student_id = ?", student.ID).
		Count(&enrolledCourses)

	var sessionsAttended int64
	database.DB.Model(&models.AttendanceRecord{}).
		Where("student_id = ? AND status IN ?", student.ID, []string{models.AttendancePresent, models.AttendanceLate}).
		Count(&sessionsAttended)

	var examHistory []models.ExamAttempt
	database.DB.Preload("Exam").
		Where("student_id = ?", student.ID).
		Order("start_time desc").
		Find(&examHistory)

	var certificates []models.Certificate
	database.DB.Preload("Course").
		Where("student_id = ?", student.ID).
		Find(&certificates)

	return c.JSON(fiber.Map{
		"enrolled_courses":  enrolledCourses,
		"sessions_attended": sessionsAttended,
		"exam_history":      examHistory,
		"certificates":      certificates,
	})
}
