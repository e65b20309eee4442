package models

import "time"

type Course struct {
	ID            uint    `gorm:"primary_key" json:"id"`
	TeacherID     uint    `gorm:"not null" json:"teacher_id"`
	Title         string  `gorm:"size:255;not null" json:"title"`
	Slug          string  `gorm:"size:255;not null;unique" json:"slug"`
	Description   string  `gorm:"type:text" json:"description"`
	Level         string  `gorm:"size:50;not null;default:'beginner'" json:"level"`
	PriceCents    int64   `gorm:"not null" json:"price_cents"`
	Currency      string  `gorm:"size:3;not null;default:'USD'" json:"currency"`
	CoverImageURL *string `gorm:"size:255" json:"cover_image_url"`
	IsPublished   bool    `gorm:"default:false" json:"is_published"`

	Teacher User `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
