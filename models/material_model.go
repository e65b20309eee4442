package models

import "time"

type Material struct {
	ID         uint      `gorm:"primary_key" json:"id"`
	CourseID   uint      `gorm:"not null" json:"course_id"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	FileURL    string    `gorm:"type:text;not null" json:"file_url"`
	UploadedAt time.Time `json:"uploaded_at"`

	Course Course `gorm:"foreignkey:CourseID" json:"-"`
}
