package models

import "time"

type Conversation struct {
	ID       uint  `gorm:"primary_key" json:"id"`
	CourseID *uint `json:"course_id"`

	Participants []*User   `gorm:"many2many:conversation_participants;" json:"participants,omitempty"`
	Messages     []Message `json:"messages,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
