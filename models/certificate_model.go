package models

import "time"

type Certificate struct {
	ID             uint      `gorm:"primary_key"`
	StudentID      uint      `gorm:"not null;uniqueIndex:idx_certificates_student_course"`
	CourseID       uint      `gorm:"not null;uniqueIndex:idx_certificates_student_course"`
	SerialNumber   string    `gorm:"size:64;not null;unique"`
	CompletionDate time.Time `gorm:"not null"`
	CertificateURL string    `gorm:"type:text;not null"`

	Student Student `gorm:"foreignkey:StudentID"`
	Course  Course  `gorm:"foreignkey:CourseID"`
}
