package models

import "time"

type Activity struct {
	ID           uint       `gorm:"primary_key" json:"id"`
	CourseID     uint       `gorm:"not null" json:"course_id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Instructions string     `gorm:"type:text" json:"instructions"`
	DueDate      *time.Time `json:"due_date"`
	MaxScore     int        `gorm:"not null;default:100" json:"max_score"`

	Course Course `gorm:"foreignkey:CourseID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ActivitySubmission struct {
	ID          uint       `gorm:"primary_key" json:"id"`
	ActivityID  uint       `gorm:"not null;uniqueIndex:idx_submissions_activity_student" json:"activity_id"`
	StudentID   uint       `gorm:"not null;uniqueIndex:idx_submissions_activity_student" json:"student_id"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Score       *float64   `json:"score"`
	Feedback    *string    `gorm:"type:text" json:"feedback"`
	SubmittedAt time.Time  `gorm:"not null" json:"submitted_at"`
	GradedAt    *time.Time `json:"graded_at"`

	Activity Activity `gorm:"foreignkey:ActivityID" json:"-"`
	Student  Student  `gorm:"foreignkey:StudentID" json:"student,omitempty"`
}
