package models

import "time"

type Exam struct {
	ID              uint   `gorm:"primary_key"`
	CourseID        uint   `gorm:"not null"`
	Title           string `gorm:"size:255;not null"`
	Description     string `gorm:"type:text"`
	DurationMinutes int    `gorm:"not null"`
	PassMark        float64 `gorm:"not null;default:60"`

	Course    Course      `gorm:"foreignkey:CourseID"`
	Questions []*Question `gorm:"many2many:exam_questions;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
