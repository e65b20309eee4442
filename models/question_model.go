package models

type Question struct {
	ID            uint   `gorm:"primary_key"`
	QuestionText  string `gorm:"type:text;not null"`
	QuestionType  string `gorm:"size:50;not null;default:'multiple_choice'"`
	Options       string `gorm:"type:text"`
	CorrectAnswer string `gorm:"type:text;not null"`
}
