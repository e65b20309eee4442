package models

import "time"

type ExamAttempt struct {
	ID        uint      `gorm:"primary_key"`
	StudentID uint      `gorm:"not null"`
	ExamID    uint      `gorm:"not null"`
	StartTime time.Time `gorm:"not null"`
	EndTime   *time.Time
	Score     *float64
	Passed    *bool

	Student Student `gorm:"foreignkey:StudentID"`
	Exam    Exam    `gorm:"foreignkey:ExamID"`
}

type AttemptAnswer struct {
	ID             uint   `gorm:"primary_key"`
	ExamAttemptID  uint   `gorm:"not null"`
	QuestionID     uint   `gorm:"not null"`
	SelectedAnswer string `gorm:"type:text;not null"`
	IsCorrect      bool   `gorm:"not null"`

	ExamAttempt ExamAttempt `gorm:"foreignkey:ExamAttemptID"`
	Question    Question    `gorm:"foreignkey:QuestionID"`
}
