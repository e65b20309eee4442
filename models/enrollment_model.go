package models

import "time"

// Enrollment links a student to a course they paid for. The composite unique
// index on (student_id, course_id) is what actually guarantees at most one
// enrollment per pair; the webhook reconciler's pre-check only short-circuits
// the common redelivery case.
type Enrollment struct {
	ID            uint      `gorm:"primary_key" json:"id"`
	StudentID     uint      `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"student_id"`
	CourseID      uint      `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"course_id"`
	EnrolledAt    time.Time `gorm:"not null" json:"enrolled_at"`
	Status        string    `gorm:"size:20;not null;default:'active'" json:"status"`
	PaymentStatus string    `gorm:"size:20;not null" json:"payment_status"`
	Notes         string    `gorm:"type:text" json:"notes"`

	Student Student `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Course  Course  `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"

	PaymentStatusPaid = "paid"
	PaymentStatusFree = "comped"
)
