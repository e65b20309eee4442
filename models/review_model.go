package models

import "time"

type Review struct {
	ID        uint   `gorm:"primary_key" json:"id"`
	CourseID  uint   `gorm:"not null;uniqueIndex:idx_reviews_course_student" json:"course_id"`
	StudentID uint   `gorm:"not null;uniqueIndex:idx_reviews_course_student" json:"student_id"`
	Rating    int    `gorm:"not null" json:"rating"`
	Comment   string `gorm:"type:text" json:"comment"`

	Course  Course  `gorm:"foreignkey:CourseID" json:"-"`
	Student Student `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
