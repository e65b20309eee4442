package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LessonSessionRequest struct {
	Topic       string    `json:"topic" validate:"required"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	MeetingLink *string   `json:"meeting_link"`
}

func CreateLessonSession(c *fiber.Ctx) error {
	course, err := courseOwnedByCaller(c, c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Course not found or you do not own it"})
	}

	var req LessonSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session := models.LessonSession{
		CourseID:    course.ID,
		Topic:       req.Topic,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MeetingLink: req.MeetingLink,
	}
	if err := database.DB.Create(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create lesson session"})
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

func ListCourseSessions(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var sessions []models.LessonSession
	if err := database.DB.Where("course_id = ?", courseID).Order("start_time asc").Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}
	return c.JSON(sessions)
}

// MarkAttendance records presence for one enrolled student in a session. The
// unique index on (session, student) turns double-marks into updates.
func MarkAttendance(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	var session models.LessonSession
	if err := database.DB.Preload("Course").First(&session, "id = ?", sessionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson session not found"})
	}
	if session.Course.TeacherID != currentUserID(c) && currentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this course"})
	}

	type Request struct {
		StudentID uint   `json:"student_id" validate:"required"`
		Status    string `json:"status" validate:"required,oneof=present late absent"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var enrollment models.Enrollment
	if err := database.DB.Where("student_id = ? AND course_id = ?", req.StudentID, session.CourseID).First(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Student is not enrolled in this course"})
	}

	record := models.AttendanceRecord{
		LessonSessionID: session.ID,
		StudentID:       req.StudentID,
		Status:          req.Status,
		MarkedAt:        time.Now(),
	}
	if err := database.DB.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = database.DB.Model(&models.AttendanceRecord{}).
				Where("lesson_session_id = ? AND student_id = ?", session.ID, req.StudentID).
				Updates(map[string]interface{}{"status": req.Status, "marked_at": time.Now()}).Error
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update attendance"})
			}
			return c.JSON(fiber.Map{"message": "Attendance updated"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark attendance"})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func GetSessionAttendance(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	var session models.LessonSession
	if err := database.DB.Preload("Course").First(&session, "id = ?", sessionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson session not found"})
	}
	if session.Course.TeacherID != currentUserID(c) && currentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this course"})
	}

	var records []models.AttendanceRecord
	database.DB.Preload("Student.User").Where("lesson_session_id = ?", sessionID).Find(&records)
	return c.JSON(records)
}

func GetMyAttendance(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student record not found"})
	}

	var records []models.AttendanceRecord
	if err := database.DB.
		Preload("LessonSession").
		Where("student_id = ?", student.ID).
		Order("marked_at desc").
		Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	return c.JSON(records)
}
