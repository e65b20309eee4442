package jobs

import (
	"time"

	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/sirupsen/logrus"
)

// MarkAbsenteesForPastSessions closes out lesson sessions that ended a while
// ago: every enrolled student without an attendance record gets marked absent
// and the session is flagged completed.
func MarkAbsenteesForPastSessions() {
	logrus.Info("Running job: MarkAbsenteesForPastSessions...")

	cutoff := time.Now().Add(-15 * time.Minute)

	var pastSessions []models.LessonSession
	err := database.DB.
		Where("status = ? AND end_time < ?", "scheduled", cutoff).
		Find(&pastSessions).Error
	if err != nil {
		logrus.Errorf("Error fetching past sessions: %v", err)
		return
	}
	if len(pastSessions) == 0 {
		return
	}

	for _, session := range pastSessions {
		var enrolledStudentIDs []uint
		err := database.DB.Model(&models.Enrollment{}).
			Where("course_id = ?", session.CourseID).
			Pluck("student_id", &enrolledStudentIDs).Error
		if err != nil {
			logrus.Errorf("Error fetching enrollments for session %d: %v", session.ID, err)
			continue
		}

		var markedStudentIDs []uint
		database.DB.Model(&models.AttendanceRecord{}).
			Where("lesson_session_id = ?", session.ID).
			Pluck("student_id", &markedStudentIDs)
		marked := make(map[uint]bool, len(markedStudentIDs))
		for _, id := range markedStudentIDs {
			marked[id] = true
		}

		absentCount := 0
		for _, studentID := range enrolledStudentIDs {
			if marked[studentID] {
				continue
			}
			record := models.AttendanceRecord{
				LessonSessionID: session.ID,
				StudentID:       studentID,
				Status:          models.AttendanceAbsent,
				MarkedAt:        time.Now(),
			}
			if err := database.DB.Create(&record).Error; err != nil {
				logrus.Errorf("Error marking student %d absent for session %d: %v", studentID, session.ID, err)
				continue
			}
			absentCount++
		}

		session.Status = "completed"
		database.DB.Save(&session)
		logrus.Infof("Closed session %d, marked %d student(s) absent.", session.ID, absentCount)
	}
}
