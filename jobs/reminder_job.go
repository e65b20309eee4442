package jobs

import (
	"fmt"
	"time"

	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/anjiri1684/english_academy/notifications"
	"github.com/sirupsen/logrus"
)

// SendSessionReminders emails every enrolled student of a course whose lesson
// session starts in roughly one hour. The window matches the cron cadence so
// each session is picked up exactly once.
func SendSessionReminders() {
	logrus.Info("Running job: SendSessionReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcomingSessions []models.LessonSession
	err := database.DB.
		Preload("Course").
		Where("status = ? AND start_time BETWEEN ? AND ?", "scheduled", lowerBound, upperBound).
		Find(&upcomingSessions).Error
	if err != nil {
		logrus.Errorf("Error checking for upcoming sessions: %v", err)
		return
	}
	if len(upcomingSessions) == 0 {
		return
	}

	for _, session := range upcomingSessions {
		var students []models.Student
		err := database.DB.
			Preload("User").
			Joins("JOIN enrollments ON enrollments.student_id = students.id").
			Where("enrollments.course_id = ?", session.CourseID).
			Find(&students).Error
		if err != nil {
			logrus.Errorf("Error fetching enrollees for session %d: %v", session.ID, err)
			continue
		}

		meetingLink := ""
		if session.MeetingLink != nil {
			meetingLink = fmt.Sprintf("<p><b>Meeting Link:</b> <a href='%s'>Join Lesson</a></p>", *session.MeetingLink)
		}
		emailSubject := "Reminder: Your Lesson Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Lesson Reminder</h1><p>Hi there,</p><p>Your lesson \"%s\" for the course <b>%s</b> starts in one hour at %s.</p>%s",
			session.Topic,
			session.Course.Title,
			session.StartTime.Format(time.Kitchen),
			meetingLink,
		)

		logrus.Infof("Sending reminders for session %d to %d student(s)", session.ID, len(students))
		for _, student := range students {
			go notifications.SendEmail(student.User.FullName, student.User.Email, emailSubject, emailBody)
		}
	}
}
