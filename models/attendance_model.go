package models

import "time"

type LessonSession struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	CourseID    uint      `gorm:"not null" json:"course_id"`
	Topic       string    `gorm:"size:255;not null" json:"topic"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	MeetingLink *string   `gorm:"size:255" json:"meeting_link"`
	Status      string    `gorm:"size:20;not null;default:'scheduled'" json:"status"`

	Course Course `gorm:"foreignkey:CourseID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type AttendanceRecord struct {
	ID              uint      `gorm:"primary_key" json:"id"`
	LessonSessionID uint      `gorm:"not null;uniqueIndex:idx_attendance_session_student" json:"lesson_session_id"`
	StudentID       uint      `gorm:"not null;uniqueIndex:idx_attendance_session_student" json:"student_id"`
	Status          string    `gorm:"size:20;not null" json:"status"`
	MarkedAt        time.Time `gorm:"not null" json:"marked_at"`

	LessonSession LessonSession `gorm:"foreignkey:LessonSessionID" json:"-"`
	Student       Student       `gorm:"foreignkey:StudentID" json:"student,omitempty"`
}

const (
	AttendancePresent = "present"
	AttendanceLate    = "late"
	AttendanceAbsent  = "absent"
)
