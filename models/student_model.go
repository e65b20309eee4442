package models

import "time"

// Student is the learner sub-record of a User. Enrollments, attempts and
// attendance hang off the student id, not the user id.
type Student struct {
	ID               uint    `gorm:"primary_key" json:"id"`
	UserID           uint    `gorm:"not null;unique" json:"user_id"`
	ProficiencyLevel *string `gorm:"size:50" json:"proficiency_level"`
	LearningGoals    *string `gorm:"type:text" json:"learning_goals"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
