package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/anjiri1684/english_academy/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ActivityRequest struct {
	Title        string     `json:"title" validate:"required"`
	Instructions string     `json:"instructions"`
	DueDate      *time.Time `json:"due_date"`
	MaxScore     int        `json:"max_score" validate:"omitempty,gt=0"`
}

func courseOwnedByCaller(c *fiber.Ctx, courseID string) (*models.Course, error) {
	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return nil, err
	}
	if course.TeacherID != currentUserID(c) && currentRole(c) != "admin" {
		return nil, errors.New("not course owner")
	}
	return &course, nil
}

func CreateActivity(c *fiber.Ctx) error {
	course, err := courseOwnedByCaller(c, c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Course not found or you do not own it"})
	}

	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	activity := models.Activity{
		CourseID:     course.ID,
		Title:        req.Title,
		Instructions: req.Instructions,
		DueDate:      req.DueDate,
	}
	if req.MaxScore > 0 {
		activity.MaxScore = req.MaxScore
	}

	if err := database.DB.Create(&activity).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create activity"})
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

func ListCourseActivities(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var activities []models.Activity
	if err := database.DB.Where("course_id = ?", courseID).Order("due_date asc").Find(&activities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch activities"})
	}
	return c.JSON(activities)
}

func UpdateActivity(c *fiber.Ctx) error {
	activityID := c.Params("activityId")

	var activity models.Activity
	if err := database.DB.Preload("Course").First(&activity, "id = ?", activityID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Activity not found"})
	}
	if activity.Course.TeacherID != currentUserID(c) && currentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this course"})
	}

	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	activity.Title = req.Title
	activity.Instructions = req.Instructions
	activity.DueDate = req.DueDate
	if req.MaxScore > 0 {
		activity.MaxScore = req.MaxScore
	}
	database.DB.Save(&activity)

	return c.JSON(activity)
}

func DeleteActivity(c *fiber.Ctx) error {
	activityID := c.Params("activityId")

	var activity models.Activity
	if err := database.DB.Preload("Course").First(&activity, "id = ?", activityID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Activity not found"})
	}
	if activity.Course.TeacherID != currentUserID(c) && currentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this course"})
	}

	if err := database.DB.Delete(&activity).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete activity"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func SubmitActivity(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student record not found"})
	}
	activityID := c.Params("activityId")

	var activity models.Activity
	if err := database.DB.First(&activity, "id = ?", activityID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Activity not found"})
	}

	var enrollment models.Enrollment
	if err := database.DB.Where("student_id = ? AND course_id = ?", student.ID, activity.CourseID).First(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You must be enrolled in this course to submit"})
	}

	type Request struct {
		Content string `json:"content" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	submission := models.ActivitySubmission{
		ActivityID:  activity.ID,
		StudentID:   student.ID,
		Content:     req.Content,
		SubmittedAt: time.Now(),
	}
	if err := database.DB.Create(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already submitted this activity"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save submission"})
	}

	return c.Status(fiber.StatusCreated).JSON(submission)
}

func GradeSubmission(c *fiber.Ctx) error {
	submissionID := c.Params("submissionId")

	var submission models.ActivitySubmission
	if err := database.DB.Preload("Activity.Course").First(&submission, "id = ?", submissionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Submission not found"})
	}
	if submission.Activity.Course.TeacherID != currentUserID(c) && currentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this course"})
	}

	type Request struct {
		Score    float64 `json:"score" validate:"gte=0"`
		Feedback *string `json:"feedback"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Score > float64(submission.Activity.MaxScore) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Score exceeds the activity's max score"})
	}

	now := time.Now()
	submission.Score = &req.Score
	submission.Feedback = req.Feedback
	submission.GradedAt = &now
	if err := database.DB.Save(&submission).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save grade"})
	}

	go services.CheckAndGenerateCertificate(submission.StudentID, submission.Activity.CourseID)

	return c.JSON(submission)
}

func ListActivitySubmissions(c *fiber.Ctx) error {
	activityID := c.Params("activityId")

	var activity models.Activity
	if err := database.DB.Preload("Course").First(&activity, "id = ?", activityID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Activity not found"})
	}
	if activity.Course.TeacherID != currentUserID(c) && currentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this course"})
	}

	var submissions []models.ActivitySubmission
	database.DB.Preload("Student.User").Where("activity_id = ?", activityID).Find(&submissions)
	return c.JSON(submissions)
}
